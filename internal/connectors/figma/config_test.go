package figma

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("accepts a token", func(t *testing.T) {
		assert.NoError(t, Config{Token: "test-token"}.Validate())
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		err := Config{}.Validate()
		require.Error(t, err)
		assert.True(t, domain.IsAuthentication(err))
	})
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Run("fills zero fields", func(t *testing.T) {
		cfg := Config{Token: "test-token"}.withDefaults()

		assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
		assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
		assert.Equal(t, DefaultInitialBackoff, cfg.InitialBackoff)
		assert.Equal(t, DefaultBackoffCeiling, cfg.BackoffCeiling)
		assert.Equal(t, float64(DefaultRequestsPerSecond), cfg.RequestsPerSecond)
		assert.Equal(t, DefaultBurst, cfg.Burst)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := Config{
			Token:          "test-token",
			BaseURL:        "http://localhost:8080",
			Concurrency:    2,
			MaxRetries:     1,
			InitialBackoff: 250 * time.Millisecond,
		}.withDefaults()

		assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
		assert.Equal(t, 2, cfg.Concurrency)
		assert.Equal(t, 1, cfg.MaxRetries)
		assert.Equal(t, 250*time.Millisecond, cfg.InitialBackoff)
	})
}
