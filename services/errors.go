package services

import "errors"

// Operation errors surfaced to the handler layer. All are recoverable: a
// failed operation leaves both in-memory and persisted state untouched.
var (
	// ErrValidation covers malformed input (short username, bad fields).
	ErrValidation = errors.New("validation failed")
	// ErrAuthRequired is returned by mutating operations with no current user.
	ErrAuthRequired = errors.New("authentication required")
	// ErrNotFound is returned when a deed id is absent from the active catalog.
	ErrNotFound = errors.New("not found")
)
