package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from the fetch-layer APIError taxonomy below.
var (
	// ErrSpecNotFound indicates no persisted spec exists for a node id.
	ErrSpecNotFound = errors.New("spec not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorCode identifies one member of the closed fetch-error taxonomy.
// The code alone determines the error kind; callers branch on it,
// never on message text.
type ErrorCode string

const (
	// ErrCodeValidation marks malformed requests or unparseable responses.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeAuthentication marks rejected or missing credentials (401/403).
	ErrCodeAuthentication ErrorCode = "AUTHENTICATION"

	// ErrCodeNotFound marks a missing file or node (404, or a node id
	// absent from an otherwise successful response).
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeRateLimit marks an exceeded rate limit (429).
	ErrCodeRateLimit ErrorCode = "RATE_LIMIT"

	// ErrCodeServer marks remote-side failures (5xx, exhausted retries).
	ErrCodeServer ErrorCode = "SERVER"

	// ErrCodeNetwork marks transport-level failures (DNS, reset, timeout).
	ErrCodeNetwork ErrorCode = "NETWORK"
)

// retryableCodes maps each code to whether retrying the same call could
// ever succeed. Rate limits clear and transports recover; the rest
// require caller intervention.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeRateLimit: true,
	ErrCodeNetwork:   true,
}

// APIError is a typed fetch-layer failure. Presentation layers build
// user-facing messages from the structured fields; the core never
// formats remediation text itself.
type APIError struct {
	// Code determines the error kind.
	Code ErrorCode

	// Message describes what failed.
	Message string

	// Retryable reports whether the same call could succeed later.
	Retryable bool

	// RetryAfterSeconds carries the server's wait hint, when one was given.
	RetryAfterSeconds int

	// PlanTier is the account tier reported alongside a rate limit.
	PlanTier string

	// RateLimitType distinguishes which limit was hit.
	RateLimitType string

	// UpgradeLink points at the plan-upgrade page, when the server sent one.
	UpgradeLink string

	// FileKey names the remote file the failed call addressed.
	FileKey string

	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// NewValidationError creates a validation APIError.
func NewValidationError(message string) *APIError {
	return newAPIError(ErrCodeValidation, message)
}

// NewAuthenticationError creates an authentication APIError for a file.
func NewAuthenticationError(message, fileKey string) *APIError {
	e := newAPIError(ErrCodeAuthentication, message)
	e.FileKey = fileKey
	return e
}

// NewNotFoundError creates a not-found APIError for a file.
func NewNotFoundError(message, fileKey string) *APIError {
	e := newAPIError(ErrCodeNotFound, message)
	e.FileKey = fileKey
	return e
}

// NewRateLimitError creates a rate-limit APIError carrying the wait hint.
func NewRateLimitError(message string, retryAfterSeconds int) *APIError {
	e := newAPIError(ErrCodeRateLimit, message)
	e.RetryAfterSeconds = retryAfterSeconds
	return e
}

// NewServerError creates a server APIError.
func NewServerError(message string) *APIError {
	return newAPIError(ErrCodeServer, message)
}

// NewNetworkError creates a network APIError wrapping the transport cause.
func NewNetworkError(message string, cause error) *APIError {
	e := newAPIError(ErrCodeNetwork, message)
	e.cause = cause
	return e
}

// newAPIError constructs an APIError with Retryable derived from the code.
func newAPIError(code ErrorCode, message string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Retryable: retryableCodes[code],
	}
}

// CodeOf extracts the taxonomy code from err, if it carries one.
func CodeOf(err error) (ErrorCode, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return "", false
}

// IsRetryable reports whether err is a retryable APIError.
func IsRetryable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Retryable
}

// IsValidation reports whether err is a validation APIError.
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsAuthentication reports whether err is an authentication APIError.
func IsAuthentication(err error) bool {
	return hasCode(err, ErrCodeAuthentication)
}

// IsNotFound reports whether err is a not-found APIError.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsRateLimit reports whether err is a rate-limit APIError.
func IsRateLimit(err error) bool {
	return hasCode(err, ErrCodeRateLimit)
}

// IsServer reports whether err is a server APIError.
func IsServer(err error) bool {
	return hasCode(err, ErrCodeServer)
}

// IsNetwork reports whether err is a network APIError.
func IsNetwork(err error) bool {
	return hasCode(err, ErrCodeNetwork)
}

func hasCode(err error, code ErrorCode) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
