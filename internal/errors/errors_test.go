package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	err := Configurationf("work_hours", "start %q is not before end %q", "19:00", "10:00")

	if !IsConfiguration(err) {
		t.Errorf("IsConfiguration() = false, want true")
	}
	if IsRetrieval(err) {
		t.Errorf("IsRetrieval() = true for a configuration error")
	}

	wrapped := fmt.Errorf("loading profile: %w", err)
	if !IsConfiguration(wrapped) {
		t.Errorf("IsConfiguration() = false for wrapped error")
	}
}

func TestRetrievalError(t *testing.T) {
	cause := errors.New("database is locked")
	err := Retrieval("fetch busy items", cause)

	if !IsRetrieval(err) {
		t.Errorf("IsRetrieval() = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is() did not find the underlying cause")
	}
	if IsConfiguration(err) {
		t.Errorf("IsConfiguration() = true for a retrieval error")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty string", got)
	}
	if got := Format(errors.New("boom")); got != "Error: boom" {
		t.Errorf("Format() = %q, want %q", got, "Error: boom")
	}
}
