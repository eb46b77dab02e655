package sentinel

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without details",
			err:      &Error{Code: "PS-TEST-1000", Message: "test message"},
			expected: "[PS-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      (&Error{Code: "PS-TEST-1001", Message: "test message"}).WithDetails("extra info"),
			expected: "[PS-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err1 := &Error{Code: "PS-TEST-1000", Message: "message 1"}
	err2 := &Error{Code: "PS-TEST-1000", Message: "message 2"} // Same code, different message
	err3 := &Error{Code: "PS-TEST-1001", Message: "message 1"} // Different code

	// Same code should match
	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}

	// Different code should not match
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}

	// Should not match a plain error
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for a plain error")
	}

	// Details must not break code matching
	if !errors.Is(ErrHandlerTimeout.WithDetails("stuck after 3s"), ErrHandlerTimeout) {
		t.Error("errors.Is should match the predeclared instance through WithDetails")
	}
	if errors.Is(ErrHandlerPanic, ErrHandlerTimeout) {
		t.Error("errors.Is should not match across distinct codes")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := (&Error{Code: "PS-TEST-1000", Message: "wrapper"}).WithCause(cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := &Error{Code: "PS-TEST-1000", Message: "no cause"}
	if errors.Unwrap(errNoCause) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}

	// errors.Is should see through to the cause
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
}

func TestError_WithDetails(t *testing.T) {
	original := &Error{Code: "PS-TEST-1000", Message: "original message"}
	withDetails := original.WithDetails("additional details")

	// Check original is unchanged
	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}

	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}
	if withDetails.Code != original.Code {
		t.Errorf("Code = %q, want %q", withDetails.Code, original.Code)
	}
	if withDetails.Message != original.Message {
		t.Errorf("Message = %q, want %q", withDetails.Message, original.Message)
	}
}

func TestError_WithCause(t *testing.T) {
	original := &Error{Code: "PS-TEST-1000", Message: "original message"}
	cause := fmt.Errorf("root cause")
	withCause := original.WithCause(cause)

	// Check original is unchanged
	if original.Cause != nil {
		t.Error("WithCause should not modify original error")
	}

	if withCause.Cause != cause {
		t.Errorf("Cause = %v, want %v", withCause.Cause, cause)
	}
	if withCause.Code != original.Code {
		t.Errorf("Code = %q, want %q", withCause.Code, original.Code)
	}
}
