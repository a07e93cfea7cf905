// Package errors provides standardized domain errors that express intent
// rather than the primitive that failed. Services wrap these sentinels and
// handlers map them to HTTP status codes or CLI exit messages.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrInvalidArgument indicates a nil, empty, or out-of-range input at a public boundary.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFormat indicates malformed encoded data (hash records, Base32 text, serialized objects).
	ErrFormat = errors.New("invalid format")

	// ErrUnsupportedType indicates a value whose type cannot be serialized.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrQRGeneration indicates the QR rendering backend failed.
	ErrQRGeneration = errors.New("qr code generation failed")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
