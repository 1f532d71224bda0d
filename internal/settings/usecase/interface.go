// Package usecase implements business logic for encrypted application
// settings. Values are encrypted before persistence and decrypted on read,
// so repositories only ever see ciphertext.
package usecase

import (
	"context"

	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
)

// SettingRepository defines the interface for Setting persistence operations.
type SettingRepository interface {
	Upsert(ctx context.Context, setting *settingsDomain.Setting) error
	GetByKey(ctx context.Context, key string) (*settingsDomain.Setting, error)
	ListKeys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// SettingUseCase defines the interface for setting management business logic.
type SettingUseCase interface {
	// Set encrypts the plaintext value and stores it under the key,
	// replacing any previous value.
	Set(ctx context.Context, key, value string) (*settingsDomain.Setting, error)

	// Get retrieves and decrypts the setting value for the key.
	Get(ctx context.Context, key string) (string, error)

	// ListKeys returns the keys of all stored settings.
	ListKeys(ctx context.Context) ([]string, error)

	// Delete removes the setting stored under the key.
	Delete(ctx context.Context, key string) error
}
