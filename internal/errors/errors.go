package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/MolchanovArt/exocortex/internal/logger"
)

// ConfigurationError indicates malformed or self-inconsistent preference data:
// a time string that is not HH:MM, or a block whose start is not before its end
// after midnight-wrap normalization. It is fatal to the suggestion request.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Configuration wraps err as a ConfigurationError for the named preference field.
func Configuration(field string, err error) error {
	return &ConfigurationError{Field: field, Err: err}
}

func Configurationf(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Err: fmt.Errorf(format, args...)}
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// RetrievalError indicates that the read of busy intervals from the persisted
// store failed. No partial suggestion results are produced.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed during %s: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Retrieval wraps err as a RetrievalError for the named store operation.
func Retrieval(op string, err error) error {
	return &RetrievalError{Op: op, Err: err}
}

// IsRetrieval reports whether err is (or wraps) a RetrievalError.
func IsRetrieval(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
