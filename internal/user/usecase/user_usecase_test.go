package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/appsecrets/internal/errors"
	"github.com/allisson/appsecrets/internal/password"
	"github.com/allisson/appsecrets/internal/user/domain"
	"github.com/allisson/appsecrets/internal/user/usecase/mocks"
)

// passthroughTxManager executes the function without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// staticThrottle allows or denies every attempt.
type staticThrottle struct {
	allow bool
}

func (s staticThrottle) Allow(string) bool {
	return s.allow
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newUseCase(repo *mocks.MockUserRepository, allow bool) UseCase {
	return NewUserUseCase(
		passthroughTxManager{},
		repo,
		password.NewArgon2idHasher(),
		staticThrottle{allow: allow},
		testLogger(),
	)
}

func TestUserUseCase_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}

		var created *domain.User
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.User)
			}).
			Return(nil).
			Once()

		useCase := newUseCase(mockRepo, true)
		user, err := useCase.RegisterUser(ctx, domain.RegisterUserInput{
			Name:     "Admin",
			Email:    "Admin@Example.COM ",
			Password: "SecurePass123!",
		})

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
		assert.NotEqual(t, "SecurePass123!", user.Password)
		assert.Contains(t, user.Password, "$argon2id$")
		require.NotNil(t, created)
		assert.Equal(t, user.ID, created.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		useCase := newUseCase(&mocks.MockUserRepository{}, true)

		_, err := useCase.RegisterUser(ctx, domain.RegisterUserInput{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: "weak",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_InvalidEmail", func(t *testing.T) {
		useCase := newUseCase(&mocks.MockUserRepository{}, true)

		_, err := useCase.RegisterUser(ctx, domain.RegisterUserInput{
			Name:     "Admin",
			Email:    "not-an-email",
			Password: "SecurePass123!",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(domain.ErrUserAlreadyExists).
			Once()

		useCase := newUseCase(mockRepo, true)
		_, err := useCase.RegisterUser(ctx, domain.RegisterUserInput{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: "SecurePass123!",
		})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestUserUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	hasher := password.NewArgon2idHasher()

	encodedHash, err := hasher.Hash("SecurePass123!")
	require.NoError(t, err)

	storedUser := &domain.User{Email: "admin@example.com", Password: encodedHash}

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("GetByEmail", ctx, "admin@example.com").Return(storedUser, nil).Once()

		useCase := newUseCase(mockRepo, true)
		user, err := useCase.Authenticate(ctx, " Admin@Example.com", "SecurePass123!")

		require.NoError(t, err)
		assert.Equal(t, storedUser.Email, user.Email)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("GetByEmail", ctx, "admin@example.com").Return(storedUser, nil).Once()

		useCase := newUseCase(mockRepo, true)
		_, err := useCase.Authenticate(ctx, "admin@example.com", "WrongPass123!")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Error_UnknownEmail", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("GetByEmail", ctx, "missing@example.com").
			Return(nil, domain.ErrUserNotFound).
			Once()

		useCase := newUseCase(mockRepo, true)
		_, err := useCase.Authenticate(ctx, "missing@example.com", "SecurePass123!")

		// Unknown email is reported exactly like a wrong password.
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Error_RateLimited", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}

		useCase := newUseCase(mockRepo, false)
		_, err := useCase.Authenticate(ctx, "admin@example.com", "SecurePass123!")

		assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
		mockRepo.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("Error_MalformedStoredHash", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("GetByEmail", ctx, "admin@example.com").
			Return(&domain.User{Email: "admin@example.com", Password: "corrupt"}, nil).
			Once()

		useCase := newUseCase(mockRepo, true)
		_, err := useCase.Authenticate(ctx, "admin@example.com", "SecurePass123!")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestUserUseCase_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hasher := password.NewArgon2idHasher()

	encodedHash, err := hasher.Hash("SecurePass123!")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		user := testDomainUser(encodedHash)

		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		mockRepo.On("UpdatePassword", ctx, user.ID, mock.AnythingOfType("string")).
			Return(nil).
			Once()

		useCase := newUseCase(mockRepo, true)
		err := useCase.ChangePassword(ctx, user.ID, "SecurePass123!", "NewSecurePass456!")

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_WrongCurrentPassword", func(t *testing.T) {
		user := testDomainUser(encodedHash)

		mockRepo := &mocks.MockUserRepository{}
		mockRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		useCase := newUseCase(mockRepo, true)
		err := useCase.ChangePassword(ctx, user.ID, "WrongPass123!", "NewSecurePass456!")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		mockRepo.AssertNotCalled(t, "UpdatePassword")
	})

	t.Run("Error_WeakNewPassword", func(t *testing.T) {
		user := testDomainUser(encodedHash)

		useCase := newUseCase(&mocks.MockUserRepository{}, true)
		err := useCase.ChangePassword(ctx, user.ID, "SecurePass123!", "weak")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func testDomainUser(encodedHash string) *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: encodedHash,
	}
}
