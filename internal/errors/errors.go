// Package apperrors defines the structured error types of mcgeom so that
// configuration mistakes, invalid run parameters and failures inside the
// estimation engine can be told apart and mapped to distinct exit codes.
//
// Every type that carries a cause implements Unwrap, so errors.Is and
// errors.As see through them. Context is added with fmt.Errorf and %w.
package apperrors

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess         = 0 // Run completed and the estimate was printed.
	ExitErrorGeneric    = 1 // Unexpected failure.
	ExitErrorEstimation = 3 // The estimation engine reported an error.
	ExitErrorConfig     = 4 // Invalid flags, environment or preset file.
)

// ConfigError represents a user configuration error, such as an unknown
// mode or an unreadable preset file.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError reports a run parameter outside its domain, for example a
// non-positive chunk count.
type ValidationError struct {
	// Field is the name of the parameter that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the rejected value (may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
//
// Parameters:
//   - field: The name of the parameter that failed validation.
//   - message: A description of why validation failed.
//   - value: The rejected value (optional).
//
// Returns:
//   - error: A new ValidationError instance.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// EstimationError wraps a failure raised while chunks were being executed,
// such as an entropy source that could not seed a generator.
type EstimationError struct {
	// Estimator is the name of the estimator that was running.
	Estimator string
	// Cause is the underlying error.
	Cause error
}

// Error returns the estimator name followed by the cause.
func (e EstimationError) Error() string {
	if e.Estimator == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Estimator, e.Cause)
}

// Unwrap returns the underlying cause.
func (e EstimationError) Unwrap() error { return e.Cause }

// NewEstimationError wraps cause, or returns nil when cause is nil.
func NewEstimationError(estimator string, cause error) error {
	if cause == nil {
		return nil
	}
	return EstimationError{Estimator: estimator, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ce ConfigError
	var ve ValidationError
	if errors.As(err, &ce) || errors.As(err, &ve) {
		return ExitErrorConfig
	}
	var ee EstimationError
	if errors.As(err, &ee) {
		return ExitErrorEstimation
	}
	return ExitErrorGeneric
}
