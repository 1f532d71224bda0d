// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gocloud.dev/secrets"

	"github.com/allisson/appsecrets/internal/config"
	cryptoDomain "github.com/allisson/appsecrets/internal/crypto/domain"
	cryptoService "github.com/allisson/appsecrets/internal/crypto/service"
	"github.com/allisson/appsecrets/internal/database"
	keystoreDomain "github.com/allisson/appsecrets/internal/keystore/domain"
	keystoreService "github.com/allisson/appsecrets/internal/keystore/service"
	"github.com/allisson/appsecrets/internal/metrics"
	"github.com/allisson/appsecrets/internal/password"
	settingsRepository "github.com/allisson/appsecrets/internal/settings/repository"
	settingsUsecase "github.com/allisson/appsecrets/internal/settings/usecase"
	userRepository "github.com/allisson/appsecrets/internal/user/repository"
	userService "github.com/allisson/appsecrets/internal/user/service"
	userUsecase "github.com/allisson/appsecrets/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Secrets and crypto
	kmsKeeper   *secrets.Keeper
	secretStore *keystoreService.FileStore
	rootSecrets keystoreDomain.RootSecrets
	fieldCipher cryptoService.FieldCipher

	// Auth services
	passwordHasher password.Hasher
	loginThrottle  *userService.LoginThrottle

	// Repositories
	settingRepo settingsUsecase.SettingRepository
	userRepo    userUsecase.UserRepository

	// Use Cases
	settingUseCase settingsUsecase.SettingUseCase
	userUseCase    userUsecase.UseCase

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	txManagerInit       sync.Once
	kmsKeeperInit       sync.Once
	secretStoreInit     sync.Once
	rootSecretsInit     sync.Once
	fieldCipherInit     sync.Once
	passwordHasherInit  sync.Once
	loginThrottleInit   sync.Once
	settingRepoInit     sync.Once
	userRepoInit        sync.Once
	settingUseCaseInit  sync.Once
	userUseCaseInit     sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// setInitError records a component initialization failure. Accessors for
// independent components can run from different goroutines, so the map is
// never touched without the lock.
func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

// initError returns the stored initialization failure for a component.
func (c *Container) initError(name string) (error, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err, exists := c.initErrors[name]
	return err, exists
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.setInitError("db", err)
			return
		}
		c.db = db
	})
	if err, exists := c.initError("db"); exists {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.setInitError("txManager", fmt.Errorf("failed to get database for tx manager: %w", err))
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err, exists := c.initError("txManager"); exists {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider instance.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.setInitError("metricsProvider", fmt.Errorf("failed to create metrics provider: %w", err))
			return
		}
		c.metricsProvider = provider
	})
	if err, exists := c.initError("metricsProvider"); exists {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// A no-op recorder is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}

		provider, err := c.MetricsProvider()
		if err != nil {
			c.setInitError("businessMetrics", err)
			return
		}

		business, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.setInitError("businessMetrics", fmt.Errorf("failed to create business metrics: %w", err))
			return
		}
		c.businessMetrics = business
	})
	if err, exists := c.initError("businessMetrics"); exists {
		return nil, err
	}
	return c.businessMetrics, nil
}

// KMSKeeper returns the KMS keeper used to wrap the root secrets record,
// or nil when no KMS key URI is configured.
func (c *Container) KMSKeeper(ctx context.Context) (*secrets.Keeper, error) {
	c.kmsKeeperInit.Do(func() {
		if c.config.KMSKeyURI == "" {
			return
		}

		keeper, err := keystoreService.OpenKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			c.setInitError("kmsKeeper", err)
			return
		}
		c.kmsKeeper = keeper
	})
	if err, exists := c.initError("kmsKeeper"); exists {
		return nil, err
	}
	return c.kmsKeeper, nil
}

// SecretStore returns the file-backed root secrets store.
func (c *Container) SecretStore(ctx context.Context) (*keystoreService.FileStore, error) {
	c.secretStoreInit.Do(func() {
		keeper, err := c.KMSKeeper(ctx)
		if err != nil {
			c.setInitError("secretStore", err)
			return
		}

		// A nil *secrets.Keeper must become a nil interface.
		var storeKeeper keystoreService.Keeper
		if keeper != nil {
			storeKeeper = keeper
		}

		c.secretStore = keystoreService.NewFileStore(c.config.SecretsFilePath(), storeKeeper, c.Logger())
	})
	if err, exists := c.initError("secretStore"); exists {
		return nil, err
	}
	return c.secretStore, nil
}

// RootSecrets returns the persisted root secrets record, creating it on first use.
func (c *Container) RootSecrets(ctx context.Context) (keystoreDomain.RootSecrets, error) {
	c.rootSecretsInit.Do(func() {
		store, err := c.SecretStore(ctx)
		if err != nil {
			c.setInitError("rootSecrets", err)
			return
		}

		rootSecrets, err := store.GetOrCreate(ctx)
		if err != nil {
			c.setInitError("rootSecrets", fmt.Errorf("failed to load root secrets: %w", err))
			return
		}
		c.rootSecrets = rootSecrets
	})
	if err, exists := c.initError("rootSecrets"); exists {
		return keystoreDomain.RootSecrets{}, err
	}
	return c.rootSecrets, nil
}

// FieldCipher returns the field cipher keyed by the root encryption key.
func (c *Container) FieldCipher(ctx context.Context) (cryptoService.FieldCipher, error) {
	c.fieldCipherInit.Do(func() {
		rootSecrets, err := c.RootSecrets(ctx)
		if err != nil {
			c.setInitError("fieldCipher", err)
			return
		}

		cipher, err := cryptoService.NewFieldCipher(
			rootSecrets.EncryptionKey,
			cryptoDomain.AESGCM,
			cryptoService.NewAEADManager(),
		)
		if err != nil {
			c.setInitError("fieldCipher", fmt.Errorf("failed to create field cipher: %w", err))
			return
		}
		c.fieldCipher = cipher
	})
	if err, exists := c.initError("fieldCipher"); exists {
		return nil, err
	}
	return c.fieldCipher, nil
}

// PasswordHasher returns the Argon2id password hasher.
func (c *Container) PasswordHasher() password.Hasher {
	c.passwordHasherInit.Do(func() {
		c.passwordHasher = password.NewArgon2idHasher()
	})
	return c.passwordHasher
}

// LoginThrottle returns the per-email login rate limiter.
func (c *Container) LoginThrottle() *userService.LoginThrottle {
	c.loginThrottleInit.Do(func() {
		c.loginThrottle = userService.NewLoginThrottle(
			c.config.LoginRateLimitPerSec,
			c.config.LoginRateLimitBurst,
		)
	})
	return c.loginThrottle
}

// SettingRepository returns the setting repository instance.
func (c *Container) SettingRepository() (settingsUsecase.SettingRepository, error) {
	c.settingRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.setInitError("settingRepo", fmt.Errorf("failed to get database for setting repository: %w", err))
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.settingRepo = settingsRepository.NewMySQLSettingRepository(db)
		case "postgres", "postgresql":
			c.settingRepo = settingsRepository.NewPostgreSQLSettingRepository(db)
		default:
			c.setInitError("settingRepo", fmt.Errorf("unsupported database driver: %s", c.config.DBDriver))
		}
	})
	if err, exists := c.initError("settingRepo"); exists {
		return nil, err
	}
	return c.settingRepo, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.setInitError("userRepo", fmt.Errorf("failed to get database for user repository: %w", err))
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = userRepository.NewMySQLUserRepository(db)
		case "postgres", "postgresql":
			c.userRepo = userRepository.NewPostgreSQLUserRepository(db)
		default:
			c.setInitError("userRepo", fmt.Errorf("unsupported database driver: %s", c.config.DBDriver))
		}
	})
	if err, exists := c.initError("userRepo"); exists {
		return nil, err
	}
	return c.userRepo, nil
}

// SettingUseCase returns the setting use case instance with metrics instrumentation.
func (c *Container) SettingUseCase(ctx context.Context) (settingsUsecase.SettingUseCase, error) {
	c.settingUseCaseInit.Do(func() {
		repo, err := c.SettingRepository()
		if err != nil {
			c.setInitError("settingUseCase", err)
			return
		}

		cipher, err := c.FieldCipher(ctx)
		if err != nil {
			c.setInitError("settingUseCase", err)
			return
		}

		business, err := c.BusinessMetrics()
		if err != nil {
			c.setInitError("settingUseCase", err)
			return
		}

		useCase := settingsUsecase.NewSettingUseCase(repo, cipher)
		c.settingUseCase = settingsUsecase.NewSettingUseCaseWithMetrics(useCase, business)
	})
	if err, exists := c.initError("settingUseCase"); exists {
		return nil, err
	}
	return c.settingUseCase, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.setInitError("userUseCase", err)
			return
		}

		userRepo, err := c.UserRepository()
		if err != nil {
			c.setInitError("userUseCase", err)
			return
		}

		c.userUseCase = userUsecase.NewUserUseCase(
			txManager,
			userRepo,
			c.PasswordHasher(),
			c.LoginThrottle(),
			c.Logger(),
		)
	})
	if err, exists := c.initError("userUseCase"); exists {
		return nil, err
	}
	return c.userUseCase, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.loginThrottle != nil {
		c.loginThrottle.Close()
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.kmsKeeper != nil {
		if err := c.kmsKeeper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("kms keeper close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
