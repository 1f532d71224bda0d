// Package mocks provides mock implementations for testing setting use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
)

// MockSettingRepository is a mock implementation of SettingRepository for testing.
type MockSettingRepository struct {
	mock.Mock
}

// Upsert mocks the Upsert method of SettingRepository.
func (m *MockSettingRepository) Upsert(ctx context.Context, setting *settingsDomain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// GetByKey mocks the GetByKey method of SettingRepository.
func (m *MockSettingRepository) GetByKey(
	ctx context.Context,
	key string,
) (*settingsDomain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsDomain.Setting), args.Error(1)
}

// ListKeys mocks the ListKeys method of SettingRepository.
func (m *MockSettingRepository) ListKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Delete mocks the Delete method of SettingRepository.
func (m *MockSettingRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
