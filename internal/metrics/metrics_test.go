package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("Success_CreateProviderWithNamespace", func(t *testing.T) {
		provider, err := NewProvider("test_app")

		require.NoError(t, err)
		assert.NotNil(t, provider)
		assert.NotNil(t, provider.meterProvider)
		assert.NotNil(t, provider.exporter)
		assert.NotNil(t, provider.registry)
	})
}

func TestProvider_Handler(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	assert.NotNil(t, provider.Handler())
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_ShutdownProvider", func(t *testing.T) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("Success_ShutdownNilProvider", func(t *testing.T) {
		provider := &Provider{meterProvider: nil}

		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	business, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	ctx := context.Background()

	// Recording must not panic or block
	business.RecordOperation(ctx, "settings", "setting_set", "success")
	business.RecordOperation(ctx, "user", "user_authenticate", "error")
	business.RecordDuration(ctx, "keystore", "secrets_load", 150*time.Millisecond, "success")
}

func TestNoOpBusinessMetrics(t *testing.T) {
	business := NewNoOpBusinessMetrics()
	ctx := context.Background()

	business.RecordOperation(ctx, "settings", "setting_get", "success")
	business.RecordDuration(ctx, "settings", "setting_get", time.Second, "success")
}
