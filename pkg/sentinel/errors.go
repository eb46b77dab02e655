package sentinel

import (
	"errors"
	"fmt"
)

// Error is a coded sentinel error. Codes are stable across releases
// and safe to match with errors.Is; messages are for humans.
type Error struct {
	Code    string
	Message string
	Details string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors by code, so the predeclared instances work as
// errors.Is targets regardless of attached details.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a copy of the error with diagnostic details.
func (e *Error) WithDetails(details string) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// WithCause returns a copy of the error wrapping an underlying cause.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.Cause = cause
	return &clone
}

// Errors manufactured by the sentinel itself. An error returned by a
// cleanup handler travels through its completion verbatim; these
// cover the failures the sentinel has to synthesize.
var (
	// ErrHandlerTimeout marks a completion whose handler exceeded the
	// grace timeout.
	ErrHandlerTimeout = &Error{Code: "PS-HNDL-0408", Message: "cleanup handler timed out"}

	// ErrHandlerPanic marks a completion whose handler panicked.
	ErrHandlerPanic = &Error{Code: "PS-HNDL-0500", Message: "cleanup handler panicked"}
)
