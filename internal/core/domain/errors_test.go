package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPIError_CodeDeterminesKind tests that every constructor produces
// exactly one code and the matching predicate.
func TestAPIError_CodeDeterminesKind(t *testing.T) {
	tests := []struct {
		name      string
		err       *APIError
		code      ErrorCode
		predicate func(error) bool
	}{
		{"validation", NewValidationError("bad request"), ErrCodeValidation, IsValidation},
		{"authentication", NewAuthenticationError("invalid token", "abc"), ErrCodeAuthentication, IsAuthentication},
		{"not found", NewNotFoundError("file abc not found", "abc"), ErrCodeNotFound, IsNotFound},
		{"rate limit", NewRateLimitError("rate limited", 30), ErrCodeRateLimit, IsRateLimit},
		{"server", NewServerError("internal error"), ErrCodeServer, IsServer},
		{"network", NewNetworkError("request failed", errors.New("reset")), ErrCodeNetwork, IsNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, tt.predicate(tt.err))

			// No other predicate matches
			predicates := map[ErrorCode]func(error) bool{
				ErrCodeValidation:     IsValidation,
				ErrCodeAuthentication: IsAuthentication,
				ErrCodeNotFound:       IsNotFound,
				ErrCodeRateLimit:      IsRateLimit,
				ErrCodeServer:         IsServer,
				ErrCodeNetwork:        IsNetwork,
			}
			for code, p := range predicates {
				if code == tt.code {
					continue
				}
				assert.False(t, p(tt.err), "predicate for %s should not match %s", code, tt.code)
			}
		})
	}
}

// TestAPIError_Retryable tests the per-code retryability flags.
func TestAPIError_Retryable(t *testing.T) {
	assert.True(t, NewRateLimitError("rate limited", 0).Retryable)
	assert.True(t, NewNetworkError("request failed", nil).Retryable)
	assert.False(t, NewValidationError("bad").Retryable)
	assert.False(t, NewAuthenticationError("no", "k").Retryable)
	assert.False(t, NewNotFoundError("missing", "k").Retryable)
	assert.False(t, NewServerError("boom").Retryable)
}

// TestIsRetryable tests retryability through wrapping.
func TestIsRetryable(t *testing.T) {
	wrapped := fmt.Errorf("fetch group: %w", NewRateLimitError("rate limited", 5))
	assert.True(t, IsRetryable(wrapped))
	assert.False(t, IsRetryable(NewServerError("boom")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

// TestCodeOf tests code extraction from wrapped errors.
func TestCodeOf(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		code, ok := CodeOf(NewServerError("boom"))
		require.True(t, ok)
		assert.Equal(t, ErrCodeServer, code)
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("run failed: %w", NewNotFoundError("node gone", "abc"))
		code, ok := CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, ErrCodeNotFound, code)
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := CodeOf(errors.New("plain"))
		assert.False(t, ok)
	})
}

// TestAPIError_StructuredFields tests the fields presentation layers rely on.
func TestAPIError_StructuredFields(t *testing.T) {
	t.Run("rate limit fields", func(t *testing.T) {
		err := NewRateLimitError("rate limited", 42)
		err.PlanTier = "starter"
		err.RateLimitType = "per-minute"
		err.UpgradeLink = "https://example.com/upgrade"

		assert.Equal(t, 42, err.RetryAfterSeconds)
		assert.Equal(t, "starter", err.PlanTier)
		assert.Equal(t, "per-minute", err.RateLimitType)
		assert.Equal(t, "https://example.com/upgrade", err.UpgradeLink)
	})

	t.Run("file key embedded", func(t *testing.T) {
		assert.Equal(t, "abc123", NewAuthenticationError("denied", "abc123").FileKey)
		assert.Equal(t, "abc123", NewNotFoundError("missing", "abc123").FileKey)
	})
}

// TestAPIError_Unwrap tests that network errors preserve their cause.
func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := NewNetworkError("request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "connection reset by peer")
}

// TestAPIError_ErrorMessage tests plain message formatting without cause.
func TestAPIError_ErrorMessage(t *testing.T) {
	assert.Equal(t, "node 1:2 not found", NewNotFoundError("node 1:2 not found", "abc").Error())
}

// TestSentinelErrors tests the store-level sentinels.
func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "spec not found", ErrSpecNotFound.Error())
	assert.Equal(t, "invalid input", ErrInvalidInput.Error())
	assert.False(t, errors.Is(ErrSpecNotFound, ErrInvalidInput))

	wrapped := fmt.Errorf("loading spec 1:2: %w", ErrSpecNotFound)
	assert.True(t, errors.Is(wrapped, ErrSpecNotFound))
}
