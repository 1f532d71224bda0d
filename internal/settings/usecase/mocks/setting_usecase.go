package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
)

// MockSettingUseCase is a mock implementation of SettingUseCase for testing.
type MockSettingUseCase struct {
	mock.Mock
}

// Set mocks the Set method of SettingUseCase.
func (m *MockSettingUseCase) Set(
	ctx context.Context,
	key, value string,
) (*settingsDomain.Setting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsDomain.Setting), args.Error(1)
}

// Get mocks the Get method of SettingUseCase.
func (m *MockSettingUseCase) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// ListKeys mocks the ListKeys method of SettingUseCase.
func (m *MockSettingUseCase) ListKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Delete mocks the Delete method of SettingUseCase.
func (m *MockSettingUseCase) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
