// Package errs holds the sentinel errors shared by the domain, store and
// HTTP layers, plus the field-level ValidationError.
package errs

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound means the entity does not exist under the current owner.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the caller is not authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrMalformedURL is returned when an href cannot be normalized.
	ErrMalformedURL = errors.New("malformed url")

	// ErrRateLimited indicates the caller exceeded the allowed request rate.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError collects per-field messages for a rejected write.
type ValidationError struct {
	Fields map[string]string
	cause  error
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for field.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = msg
	return e
}

// Wrap attaches the underlying cause so errors.Is still sees it.
func (e *ValidationError) Wrap(cause error) *ValidationError {
	e.cause = cause
	return e
}

// OrNil returns nil when no field was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.cause }

// Invalid is a shortcut for a single-field ValidationError.
func Invalid(field, msg string) error {
	return NewValidationError().Add(field, msg)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
