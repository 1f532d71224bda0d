// Package usecase implements the admin user business logic: registration
// with Argon2id hashing and throttled credential authentication.
package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/appsecrets/internal/database"
	apperrors "github.com/allisson/appsecrets/internal/errors"
	"github.com/allisson/appsecrets/internal/password"
	"github.com/allisson/appsecrets/internal/user/domain"
	appValidation "github.com/allisson/appsecrets/internal/validation"
)

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	// RegisterUser creates a new admin user with a hashed password.
	RegisterUser(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error)

	// Authenticate verifies credentials and returns the matching user.
	// Failed lookups and wrong passwords both yield ErrInvalidCredentials;
	// attempts beyond the per-email rate limit yield ErrTooManyAttempts.
	Authenticate(ctx context.Context, email, plainPassword string) (*domain.User, error)

	// ChangePassword verifies the current password and stores a new hash.
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error

	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserRepository interface defines user repository operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
}

// LoginThrottle limits login attempts per email.
type LoginThrottle interface {
	Allow(email string) bool
}

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	txManager database.TxManager
	userRepo  UserRepository
	hasher    password.Hasher
	throttle  LoginThrottle
	logger    *slog.Logger
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	hasher password.Hasher,
	throttle LoginThrottle,
	logger *slog.Logger,
) UseCase {
	return &UserUseCase{
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
		throttle:  throttle,
		logger:    logger,
	}
}

// validateRegisterUserInput validates the registration input using jellydator/validation.
func (uc *UserUseCase) validateRegisterUserInput(input domain.RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser registers a new admin user.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error) {
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Password: hashedPassword,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Authenticate verifies credentials for an admin login.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, plainPassword string) (*domain.User, error) {
	email = normalizeEmail(email)

	if !uc.throttle.Allow(email) {
		uc.logger.Warn("login attempt rate limited", slog.String("email", email))
		return nil, domain.ErrTooManyAttempts
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.hasher.Verify(plainPassword, user.Password) {
		uc.logger.Warn("login attempt with wrong password", slog.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (uc *UserUseCase) ChangePassword(
	ctx context.Context,
	id uuid.UUID,
	currentPassword, newPassword string,
) error {
	err := appValidation.WrapValidationError(validation.Validate(newPassword,
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		appValidation.PasswordStrength{
			MinLength:      8,
			RequireUpper:   true,
			RequireLower:   true,
			RequireNumber:  true,
			RequireSpecial: true,
		},
	))
	if err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !uc.hasher.Verify(currentPassword, user.Password) {
		return domain.ErrInvalidCredentials
	}

	hashedPassword, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Wrap(err, "failed to hash password")
	}

	return uc.userRepo.UpdatePassword(ctx, id, hashedPassword)
}

// GetUserByEmail retrieves a user by email.
func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
}

// GetUserByID retrieves a user by ID.
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
