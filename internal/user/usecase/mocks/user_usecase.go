package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/appsecrets/internal/user/domain"
)

// MockUserUseCase is a mock implementation of UseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// RegisterUser mocks the RegisterUser method of UseCase.
func (m *MockUserUseCase) RegisterUser(
	ctx context.Context,
	input domain.RegisterUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Authenticate mocks the Authenticate method of UseCase.
func (m *MockUserUseCase) Authenticate(
	ctx context.Context,
	email, plainPassword string,
) (*domain.User, error) {
	args := m.Called(ctx, email, plainPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// ChangePassword mocks the ChangePassword method of UseCase.
func (m *MockUserUseCase) ChangePassword(
	ctx context.Context,
	id uuid.UUID,
	currentPassword, newPassword string,
) error {
	args := m.Called(ctx, id, currentPassword, newPassword)
	return args.Error(0)
}

// GetUserByEmail mocks the GetUserByEmail method of UseCase.
func (m *MockUserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// GetUserByID mocks the GetUserByID method of UseCase.
func (m *MockUserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
