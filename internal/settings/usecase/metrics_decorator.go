package usecase

import (
	"context"
	"time"

	"github.com/allisson/appsecrets/internal/metrics"
	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
)

// settingUseCaseWithMetrics decorates SettingUseCase with metrics instrumentation.
type settingUseCaseWithMetrics struct {
	next    SettingUseCase
	metrics metrics.BusinessMetrics
}

// NewSettingUseCaseWithMetrics wraps a SettingUseCase with metrics recording.
func NewSettingUseCaseWithMetrics(useCase SettingUseCase, m metrics.BusinessMetrics) SettingUseCase {
	return &settingUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Set records metrics for setting write operations.
func (s *settingUseCaseWithMetrics) Set(
	ctx context.Context,
	key, value string,
) (*settingsDomain.Setting, error) {
	start := time.Now()
	setting, err := s.next.Set(ctx, key, value)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "settings", "setting_set", status)
	s.metrics.RecordDuration(ctx, "settings", "setting_set", time.Since(start), status)

	return setting, err
}

// Get records metrics for setting read operations.
func (s *settingUseCaseWithMetrics) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "settings", "setting_get", status)
	s.metrics.RecordDuration(ctx, "settings", "setting_get", time.Since(start), status)

	return value, err
}

// ListKeys records metrics for setting list operations.
func (s *settingUseCaseWithMetrics) ListKeys(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := s.next.ListKeys(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "settings", "setting_list", status)
	s.metrics.RecordDuration(ctx, "settings", "setting_list", time.Since(start), status)

	return keys, err
}

// Delete records metrics for setting delete operations.
func (s *settingUseCaseWithMetrics) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "settings", "setting_delete", status)
	s.metrics.RecordDuration(ctx, "settings", "setting_delete", time.Since(start), status)

	return err
}
