package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	settingsUsecase "github.com/allisson/appsecrets/internal/settings/usecase"
)

// RunSetSetting encrypts and stores a setting value under the given key,
// replacing any previous value.
//
// Requirements: Database must be migrated and accessible.
func RunSetSetting(
	ctx context.Context,
	settingUseCase settingsUsecase.SettingUseCase,
	logger *slog.Logger,
	writer io.Writer,
	key string,
	value string,
) error {
	setting, err := settingUseCase.Set(ctx, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Setting %q stored (id=%s)\n", setting.Key, setting.ID)

	logger.Info("setting stored", slog.String("key", key))
	return nil
}

// RunGetSetting retrieves and decrypts the setting stored under the key.
func RunGetSetting(
	ctx context.Context,
	settingUseCase settingsUsecase.SettingUseCase,
	writer io.Writer,
	key string,
) error {
	value, err := settingUseCase.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to get setting: %w", err)
	}

	_, _ = fmt.Fprintln(writer, value)
	return nil
}

// RunListSettings prints the keys of all stored settings.
func RunListSettings(
	ctx context.Context,
	settingUseCase settingsUsecase.SettingUseCase,
	writer io.Writer,
	format string,
) error {
	keys, err := settingUseCase.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list settings: %w", err)
	}

	if format == "json" {
		encoder := json.NewEncoder(writer)
		if err := encoder.Encode(keys); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}

	for _, key := range keys {
		_, _ = fmt.Fprintln(writer, key)
	}
	return nil
}

// RunDeleteSetting removes the setting stored under the key.
func RunDeleteSetting(
	ctx context.Context,
	settingUseCase settingsUsecase.SettingUseCase,
	logger *slog.Logger,
	writer io.Writer,
	key string,
) error {
	if err := settingUseCase.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Setting %q deleted\n", key)

	logger.Info("setting deleted", slog.String("key", key))
	return nil
}
