package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// Pipeline outcomes.
var (
	// ErrSourceUnavailable marks a failed source lookup. Adapters log it and
	// report no candidates; it never reaches callers of the pipeline.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrFallbackUnavailable marks a failed generative completion. The entry
	// keeps whatever fields it already has.
	ErrFallbackUnavailable = errors.New("fallback unavailable")

	// ErrInvalidHeadword is returned when the fallback judges the input not to
	// be a word. Nothing is persisted.
	ErrInvalidHeadword = errors.New("invalid headword")

	// ErrNoneAvailable is returned by the selector when no entry matches the
	// learner's filter, even after a scoped reset.
	ErrNoneAvailable = errors.New("no entry available")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
