package domain

import "errors"

// Sentinel errors shared by services and repositories. Callers match them with errors.Is;
// services wrap them with context using fmt.Errorf("...: %w", err).
var (
	// ErrNotFound is returned when a referenced event, request or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller has no rights over the target entity (e.g. not the event owner).
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned on uniqueness or state violations (duplicate active join request, request already decided).
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
)
