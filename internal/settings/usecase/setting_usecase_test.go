package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/appsecrets/internal/crypto/domain"
	cryptoService "github.com/allisson/appsecrets/internal/crypto/service"
	apperrors "github.com/allisson/appsecrets/internal/errors"
	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
	"github.com/allisson/appsecrets/internal/settings/usecase/mocks"
)

func newTestCipher(t *testing.T) cryptoService.FieldCipher {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := cryptoService.NewFieldCipher(
		hex.EncodeToString(key),
		cryptoDomain.AESGCM,
		cryptoService.NewAEADManager(),
	)
	require.NoError(t, err)
	return cipher
}

func TestSettingUseCase_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EncryptsBeforePersisting", func(t *testing.T) {
		cipher := newTestCipher(t)
		mockRepo := &mocks.MockSettingRepository{}

		var stored *settingsDomain.Setting
		mockRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.Setting")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*settingsDomain.Setting)
			}).
			Return(nil).
			Once()

		useCase := NewSettingUseCase(mockRepo, cipher)
		setting, err := useCase.Set(ctx, "llm_api_token", "sk-example-token-123")

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "llm_api_token", stored.Key)
		assert.NoError(t, stored.Value.Validate())

		// The repository never sees the plaintext.
		assert.NotContains(t, stored.Value.Ciphertext, "sk-example-token-123")

		// The returned setting decrypts back to the original value.
		plaintext, err := cipher.DecryptString(setting.Value)
		require.NoError(t, err)
		assert.Equal(t, "sk-example-token-123", plaintext)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_BlankKey", func(t *testing.T) {
		useCase := NewSettingUseCase(&mocks.MockSettingRepository{}, newTestCipher(t))

		_, err := useCase.Set(ctx, "   ", "value")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		mockRepo := &mocks.MockSettingRepository{}
		mockRepo.On("Upsert", ctx, mock.Anything).Return(apperrors.ErrConflict).Once()

		useCase := NewSettingUseCase(mockRepo, newTestCipher(t))
		_, err := useCase.Set(ctx, "llm_api_token", "value")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestSettingUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DecryptsStoredValue", func(t *testing.T) {
		cipher := newTestCipher(t)

		encrypted, err := cipher.EncryptString("postgres://user:secret@db/app")
		require.NoError(t, err)

		mockRepo := &mocks.MockSettingRepository{}
		mockRepo.On("GetByKey", ctx, "db_url").
			Return(&settingsDomain.Setting{Key: "db_url", Value: encrypted}, nil).
			Once()

		useCase := NewSettingUseCase(mockRepo, cipher)
		value, err := useCase.Get(ctx, "db_url")

		require.NoError(t, err)
		assert.Equal(t, "postgres://user:secret@db/app", value)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mocks.MockSettingRepository{}
		mockRepo.On("GetByKey", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

		useCase := NewSettingUseCase(mockRepo, newTestCipher(t))
		_, err := useCase.Get(ctx, "missing")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_CorruptCiphertext", func(t *testing.T) {
		mockRepo := &mocks.MockSettingRepository{}
		mockRepo.On("GetByKey", ctx, "corrupt").
			Return(&settingsDomain.Setting{
				Key:   "corrupt",
				Value: cryptoDomain.EncryptedValue{IV: "AQID", Ciphertext: "AQID"},
			}, nil).
			Once()

		useCase := NewSettingUseCase(mockRepo, newTestCipher(t))
		_, err := useCase.Get(ctx, "corrupt")

		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_CorruptedRow", func(t *testing.T) {
		mockRepo := &mocks.MockSettingRepository{}
		mockRepo.On("GetByKey", ctx, "half-row").
			Return(&settingsDomain.Setting{
				Key:   "half-row",
				Value: cryptoDomain.EncryptedValue{IV: "AQID", Ciphertext: ""},
			}, nil).
			Once()

		useCase := NewSettingUseCase(mockRepo, newTestCipher(t))
		_, err := useCase.Get(ctx, "half-row")

		assert.ErrorIs(t, err, settingsDomain.ErrCorruptedSetting)
	})
}

func TestSettingUseCase_ListKeys(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mocks.MockSettingRepository{}
	mockRepo.On("ListKeys", ctx).Return([]string{"db_url", "llm_api_token"}, nil).Once()

	useCase := NewSettingUseCase(mockRepo, newTestCipher(t))
	keys, err := useCase.ListKeys(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"db_url", "llm_api_token"}, keys)
}

func TestSettingUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mocks.MockSettingRepository{}
		mockRepo.On("Delete", ctx, "llm_api_token").Return(nil).Once()

		useCase := NewSettingUseCase(mockRepo, newTestCipher(t))
		assert.NoError(t, useCase.Delete(ctx, "llm_api_token"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mocks.MockSettingRepository{}
		mockRepo.On("Delete", ctx, "missing").Return(apperrors.ErrNotFound).Once()

		useCase := NewSettingUseCase(mockRepo, newTestCipher(t))
		assert.ErrorIs(t, useCase.Delete(ctx, "missing"), apperrors.ErrNotFound)
	})
}
