package apperr

import "errors"

// Common errors shared across services and the HTTP layer.
// Wrapped with fmt.Errorf("...: %w", err) at call sites and
// matched with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrInvalidRange        = errors.New("end date is before start date")
	ErrDuplicateOccurrence = errors.New("ad hoc occurrence already exists for this date")
)
