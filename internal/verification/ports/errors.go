package ports

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized taxonomy of upstream evidence failures.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"
	ErrorBadData        ErrorCategory = "bad_data"
	ErrorAuthentication ErrorCategory = "authentication"
	ErrorProviderOutage ErrorCategory = "provider_outage"
	ErrorRateLimited    ErrorCategory = "rate_limited"
	ErrorInternal       ErrorCategory = "internal"
)

// EvidenceError wraps a collaborator failure with its category.
type EvidenceError struct {
	Category   ErrorCategory
	Source     string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *EvidenceError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("evidence %s [%s]: %s: %v", e.Source, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("evidence %s [%s]: %s", e.Source, e.Category, e.Message)
}

func (e *EvidenceError) Unwrap() error {
	return e.Underlying
}

// NewEvidenceError creates a categorized evidence error.
func NewEvidenceError(category ErrorCategory, source, message string, underlying error) *EvidenceError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &EvidenceError{
		Category:   category,
		Source:     source,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable reports whether err is a retryable evidence error.
func IsRetryable(err error) bool {
	var ee *EvidenceError
	if errors.As(err, &ee) {
		return ee.Retryable
	}
	return false
}

// Category extracts the error category, defaulting to internal.
func Category(err error) ErrorCategory {
	var ee *EvidenceError
	if errors.As(err, &ee) {
		return ee.Category
	}
	return ErrorInternal
}
