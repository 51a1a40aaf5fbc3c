// Package apperrors defines the structured error types of the application
// and the exit codes they map to. Every type that carries a cause implements
// Unwrap, so errors.Is and errors.As see through the wrapping.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Exit codes returned by the ratenum command.
const (
	ExitSuccess             = 0   // Successful execution.
	ExitErrorGeneric        = 1   // Unclassified failure.
	ExitErrorTimeout        = 2   // The -timeout deadline was reached.
	ExitErrorMismatch       = 3   // Integer kinds disagreed on a value.
	ExitErrorConfig         = 4   // Invalid flags or environment.
	ExitErrorRangeExhausted = 5   // The integer kind ran out of range.
	ExitErrorCanceled       = 130 // Interrupted by SIGINT or SIGTERM.
)

// ConfigError reports invalid user configuration.
type ConfigError struct {
	// Message explains what is wrong with the configuration.
	Message string
}

// Error returns the message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EnumerationError wraps a failure while producing rationals for a given
// integer kind.
type EnumerationError struct {
	// Kind is the integer kind being enumerated.
	Kind string
	// Index is the index that was requested.
	Index uint64
	// Cause is the underlying error.
	Cause error
}

// Error prefixes the cause with the kind and index.
func (e EnumerationError) Error() string {
	if e.Kind == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s at index %d: %v", e.Kind, e.Index, e.Cause)
}

// Unwrap returns the cause.
func (e EnumerationError) Unwrap() error { return e.Cause }

// NewEnumerationError wraps cause, returning nil when cause is nil.
func NewEnumerationError(kind string, index uint64, cause error) error {
	if cause == nil {
		return nil
	}
	return EnumerationError{Kind: kind, Index: index, Cause: cause}
}

// ServerError represents errors in the HTTP server.
type ServerError struct {
	// Message describes the failing server operation.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the message and the cause.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the cause, or nil.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError. cause may be nil.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ValidationError reports a request or configuration value that failed
// validation.
type ValidationError struct {
	// Field is the name of the offending field.
	Field string
	// Message says why validation failed.
	Message string
	// Value is the rejected value, if useful.
	Value any
}

// Error returns a message naming the field when known.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// WrapError adds context to err with %w. It returns nil when err is nil.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
