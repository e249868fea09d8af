package figma

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderToken carries the personal access token.
	HeaderToken = "X-Figma-Token"

	// HeaderRetryAfter is the server's wait hint in seconds.
	HeaderRetryAfter = "Retry-After"

	// HeaderPlanTier names the account plan the limit applies to.
	HeaderPlanTier = "X-Plan-Tier"

	// HeaderRateLimitType names which quota was exhausted.
	HeaderRateLimitType = "X-Rate-Limit-Type"

	// HeaderUpgradeLink points at the plan upgrade page.
	HeaderUpgradeLink = "X-Upgrade-Link"
)

// RateLimitHint is the normalised form of a 429 response's headers.
// Absent or malformed headers leave their fields zero.
type RateLimitHint struct {
	RetryAfterSeconds int
	PlanTier          string
	RateLimitType     string
	UpgradeLink       string
}

// HasRetryAfter reports whether the server named an explicit wait.
func (h RateLimitHint) HasRetryAfter() bool {
	return h.RetryAfterSeconds > 0
}

// ParseRateLimitHint extracts retry hints from response headers.
// A Retry-After value that is not a positive integer is treated as
// absent so a malformed header can never produce a bogus wait.
func ParseRateLimitHint(header http.Header) RateLimitHint {
	hint := RateLimitHint{
		PlanTier:      header.Get(HeaderPlanTier),
		RateLimitType: header.Get(HeaderRateLimitType),
		UpgradeLink:   header.Get(HeaderUpgradeLink),
	}
	if v := header.Get(HeaderRetryAfter); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			hint.RetryAfterSeconds = seconds
		}
	}
	return hint
}

// RateLimiter paces outgoing requests with a token bucket so grouped
// fetches never burst past the API quota in the first place. Reactive
// 429 handling lives in the client's retry loop.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the
// given burst.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// backoffDelay returns the wait before the given retry attempt when
// the server sent no hint: initial, then doubling per attempt.
func backoffDelay(initial time.Duration, attempt int) time.Duration {
	return initial << attempt
}
