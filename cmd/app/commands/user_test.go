package commands

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/appsecrets/internal/user/domain"
	userMocks "github.com/allisson/appsecrets/internal/user/usecase/mocks"
)

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	user := &domain.User{
		ID:    uuid.New(),
		Name:  "Admin",
		Email: "admin@example.com",
	}

	t.Run("password-from-flag", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		input := domain.RegisterUserInput{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: "correct horse battery staple",
		}
		mockUseCase.On("RegisterUser", ctx, input).Return(user, nil)

		var out bytes.Buffer
		io := IOTuple{Reader: nil, Writer: &out}

		err := RunCreateUser(
			ctx, mockUseCase, logger, io,
			"Admin", "admin@example.com", "correct horse battery staple",
		)
		require.NoError(t, err)
		require.Contains(t, out.String(), "admin@example.com")
		require.Contains(t, out.String(), user.ID.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("password-from-prompt", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		input := domain.RegisterUserInput{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: "prompted password",
		}
		mockUseCase.On("RegisterUser", ctx, input).Return(user, nil)

		var out bytes.Buffer
		io := IOTuple{
			Reader: strings.NewReader("prompted password\n"),
			Writer: &out,
		}

		err := RunCreateUser(ctx, mockUseCase, logger, io, "Admin", "admin@example.com", "")
		require.NoError(t, err)
		require.Contains(t, out.String(), "Enter password:")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("registration-error", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("RegisterUser", ctx, mock.Anything).
			Return(nil, domain.ErrUserAlreadyExists)

		var out bytes.Buffer
		io := IOTuple{Reader: nil, Writer: &out}

		err := RunCreateUser(
			ctx, mockUseCase, logger, io,
			"Admin", "admin@example.com", "correct horse battery staple",
		)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create user")
	})
}
