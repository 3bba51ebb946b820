package models

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrMalformedVersion is returned when a version string is neither "latest"
	// nor a valid semantic version.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrMalformedAddress is returned when a specific port binding carries an
	// address that is not an IP literal.
	ErrMalformedAddress = errors.New("malformed address")

	// ErrUnknownField is returned when a request document carries a key the
	// schema does not know.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidEnum is returned when an enumerated field holds a value outside
	// its closed set.
	ErrInvalidEnum = errors.New("invalid enum value")
)

// FieldError wraps a translation failure with the field and value that caused it.
type FieldError struct {
	Field   string // Field that failed (e.g., "mongodbVersion")
	Value   string // Offending input as supplied
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError.
func NewFieldError(field, value, message string, err error) *FieldError {
	return &FieldError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}
