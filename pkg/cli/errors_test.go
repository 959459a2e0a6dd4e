package cli

import (
	"errors"
	"strings"
	"testing"
)

// TestConfigError tests message formatting with and without a field.
func TestConfigError(t *testing.T) {
	err := NewConfigError("policy_file", "must not be empty")
	if !strings.Contains(err.Error(), "policy_file") {
		t.Errorf("Expected field in message, got %q", err.Error())
	}

	bare := NewConfigError("", "something is off")
	if strings.Contains(bare.Error(), "in ") {
		t.Errorf("Expected fieldless message, got %q", bare.Error())
	}
}

// TestCommandError_Unwrap tests error chain traversal.
func TestCommandError_Unwrap(t *testing.T) {
	inner := errors.New("scan failed")
	err := NewCommandError("purge", inner)
	if !errors.Is(err, inner) {
		t.Error("Expected wrapped error to be reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "purge") {
		t.Errorf("Expected command name in message, got %q", err.Error())
	}
}

// TestPartialFailureError tests the degraded-sweep error message.
func TestPartialFailureError(t *testing.T) {
	err := &PartialFailureError{Failures: 3}
	if !strings.Contains(err.Error(), "3 entry failures") {
		t.Errorf("Expected failure count in message, got %q", err.Error())
	}
}
