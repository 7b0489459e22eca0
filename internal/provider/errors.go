package provider

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for domain provider calls.
// Callers decide on retries from the category, never from raw status codes.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"
	ErrorBadData        ErrorCategory = "bad_data"
	ErrorAuthentication ErrorCategory = "authentication"
	ErrorProviderOutage ErrorCategory = "provider_outage"
	ErrorNotFound       ErrorCategory = "not_found"
	ErrorRateLimited    ErrorCategory = "rate_limited"
	ErrorConflict       ErrorCategory = "conflict"
	ErrorInternal       ErrorCategory = "internal"
)

// ProviderError wraps a failed provider call.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	StatusCode int
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError classifies timeout, outage and rate-limited failures as retryable.
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

func IsNotFound(err error) bool {
	return GetCategory(err) == ErrorNotFound
}

var (
	// ErrDomainInUseElsewhere means the provider refused the domain because a
	// project other than ours holds it.
	ErrDomainInUseElsewhere = errors.New("domain is registered to another provider project")

	// ErrNotConfigured means no provider credentials are set.
	ErrNotConfigured = errors.New("domain provider not configured")
)
