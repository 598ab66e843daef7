package helpers

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type CollectorError struct {
	Message string
	Cause   error
}

func (e *CollectorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CollectorError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// TransportError marks an upstream fetch failure (connection error or
// non-200 status). It is fatal for the whole cycle: the runner aborts
// without touching further resolutions, windows, or the view rebuild.
type TransportError struct{ CollectorError }

// DatabaseError marks a storage failure. Committed writes stand; the next
// cycle's gap planner resumes from them.
type DatabaseError struct{ CollectorError }

// ValidationError marks invalid configuration or boundary input.
type ValidationError struct{ CollectorError }

// -----------------------------------------------------------------------------

func NewTransportError(msg string, cause error) *TransportError {
	return &TransportError{CollectorError{Message: msg, Cause: cause}}
}

func NewDatabaseError(msg string, cause error) *DatabaseError {
	return &DatabaseError{CollectorError{Message: msg, Cause: cause}}
}

func NewValidationError(msg string, cause error) *ValidationError {
	return &ValidationError{CollectorError{Message: msg, Cause: cause}}
}

// -----------------------------------------------------------------------------

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
