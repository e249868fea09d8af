package figma

import (
	"time"

	"github.com/spectrail-labs/spectrail-cli/internal/core/domain"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.figma.com"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency bounds the number of in-flight file fetches.
	DefaultConcurrency = 5

	// DefaultMaxRetries is the number of rate-limit retries per fetch.
	DefaultMaxRetries = 3

	// DefaultInitialBackoff seeds the exponential backoff when the
	// server sends no retry hint.
	DefaultInitialBackoff = time.Second

	// DefaultBackoffCeiling aborts any wait longer than this rather
	// than blocking the run.
	DefaultBackoffCeiling = 3600 * time.Second

	// DefaultRequestsPerSecond is the proactive throttle rate.
	DefaultRequestsPerSecond = 5

	// DefaultBurst is the proactive throttle burst size.
	DefaultBurst = 10
)

// Config holds fetch client configuration. Zero fields take defaults;
// only Token is required.
type Config struct {
	// Token is the personal access token. Never logged.
	Token string

	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string

	// Concurrency bounds the number of files fetched in parallel.
	Concurrency int

	// MaxRetries bounds rate-limit retries for a single fetch.
	MaxRetries int

	// InitialBackoff seeds the exponential backoff.
	InitialBackoff time.Duration

	// BackoffCeiling aborts waits longer than this.
	BackoffCeiling time.Duration

	// RequestsPerSecond paces outgoing requests.
	RequestsPerSecond float64

	// Burst is the token bucket burst size.
	Burst int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// Validate checks that the configuration can authenticate.
func (c Config) Validate() error {
	if c.Token == "" {
		return domain.NewAuthenticationError("figma: no access token configured", "")
	}
	return nil
}

// withDefaults fills unset fields with their defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = DefaultInitialBackoff
	}
	if c.BackoffCeiling <= 0 {
		c.BackoffCeiling = DefaultBackoffCeiling
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
