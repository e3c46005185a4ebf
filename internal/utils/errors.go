// Package utils provides small, dependency-free helpers shared across the
// codec, tree, and transport packages.
package utils

import "fmt"

// CodecError represents a contextual codec error: a human-readable location
// wrapped around a sentinel cause, so callers can both read a message and
// errors.Is/errors.As against the sentinel.
type CodecError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error. Returns nil if cause is nil.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &CodecError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *CodecError) Unwrap() error {
	return e.Cause
}
