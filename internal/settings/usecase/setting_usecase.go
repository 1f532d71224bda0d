package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoService "github.com/allisson/appsecrets/internal/crypto/service"
	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
	appvalidation "github.com/allisson/appsecrets/internal/validation"
)

// settingUseCase implements SettingUseCase with field-level encryption.
type settingUseCase struct {
	repo   SettingRepository
	cipher cryptoService.FieldCipher
}

// NewSettingUseCase creates a new SettingUseCase.
func NewSettingUseCase(repo SettingRepository, cipher cryptoService.FieldCipher) SettingUseCase {
	return &settingUseCase{
		repo:   repo,
		cipher: cipher,
	}
}

// Set encrypts the plaintext value and stores it under the key.
func (s *settingUseCase) Set(ctx context.Context, key, value string) (*settingsDomain.Setting, error) {
	if err := validateSettingKey(key); err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.EncryptString(value)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	setting := &settingsDomain.Setting{
		ID:        uuid.New(),
		Key:       key,
		Value:     encrypted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := setting.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	return setting, nil
}

// Get retrieves and decrypts the setting value for the key.
func (s *settingUseCase) Get(ctx context.Context, key string) (string, error) {
	if err := validateSettingKey(key); err != nil {
		return "", err
	}

	setting, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}

	if err := setting.Value.Validate(); err != nil {
		return "", settingsDomain.ErrCorruptedSetting
	}

	return s.cipher.DecryptString(setting.Value)
}

// ListKeys returns the keys of all stored settings.
func (s *settingUseCase) ListKeys(ctx context.Context) ([]string, error) {
	return s.repo.ListKeys(ctx)
}

// Delete removes the setting stored under the key.
func (s *settingUseCase) Delete(ctx context.Context, key string) error {
	if err := validateSettingKey(key); err != nil {
		return err
	}

	return s.repo.Delete(ctx, key)
}

// validateSettingKey validates the setting key using jellydator/validation.
func validateSettingKey(key string) error {
	err := validation.Validate(key,
		validation.Required.Error("key is required"),
		appvalidation.NotBlank,
		validation.Length(1, 255).Error("key must be between 1 and 255 characters"),
	)
	return appvalidation.WrapValidationError(err)
}
