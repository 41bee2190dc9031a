// Package common defines shared constants and sentinel errors used across
// the fingervault server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors (missing fields, empty bodies).
	ErrorValidation = errors.New("validation error")

	// Not-found outcomes. These are normal results, not faults.
	ErrNoTemplates = errors.New("no templates found")
	ErrNoMatch     = errors.New("no match found")

	// Blob store errors.
	ErrorNotFound = errors.New("not found")
)

// ValidationError carries a client-facing message and matches
// ErrorValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrorValidation }
