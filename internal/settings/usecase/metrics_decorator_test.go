package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/appsecrets/internal/errors"
	settingsDomain "github.com/allisson/appsecrets/internal/settings/domain"
)

// recordingMetrics captures metric calls for assertions.
type recordingMetrics struct {
	operations []string
	statuses   []string
	durations  int
}

func (r *recordingMetrics) RecordOperation(_ context.Context, _, operation, status string) {
	r.operations = append(r.operations, operation)
	r.statuses = append(r.statuses, status)
}

func (r *recordingMetrics) RecordDuration(
	_ context.Context,
	_, _ string,
	_ time.Duration,
	_ string,
) {
	r.durations++
}

// fakeSettingUseCase returns canned values for decorator tests.
type fakeSettingUseCase struct {
	err error
}

func (f *fakeSettingUseCase) Set(context.Context, string, string) (*settingsDomain.Setting, error) {
	return &settingsDomain.Setting{}, f.err
}

func (f *fakeSettingUseCase) Get(context.Context, string) (string, error) {
	return "value", f.err
}

func (f *fakeSettingUseCase) ListKeys(context.Context) ([]string, error) {
	return []string{"a"}, f.err
}

func (f *fakeSettingUseCase) Delete(context.Context, string) error {
	return f.err
}

func TestSettingUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("records success status", func(t *testing.T) {
		recorder := &recordingMetrics{}
		decorated := NewSettingUseCaseWithMetrics(&fakeSettingUseCase{}, recorder)

		_, err := decorated.Set(ctx, "key", "value")
		require.NoError(t, err)

		_, err = decorated.Get(ctx, "key")
		require.NoError(t, err)

		_, err = decorated.ListKeys(ctx)
		require.NoError(t, err)

		require.NoError(t, decorated.Delete(ctx, "key"))

		assert.Equal(t,
			[]string{"setting_set", "setting_get", "setting_list", "setting_delete"},
			recorder.operations,
		)
		assert.Equal(t, []string{"success", "success", "success", "success"}, recorder.statuses)
		assert.Equal(t, 4, recorder.durations)
	})

	t.Run("records error status", func(t *testing.T) {
		recorder := &recordingMetrics{}
		decorated := NewSettingUseCaseWithMetrics(
			&fakeSettingUseCase{err: apperrors.ErrNotFound},
			recorder,
		)

		_, err := decorated.Get(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Equal(t, []string{"error"}, recorder.statuses)
	})
}
