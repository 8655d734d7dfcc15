package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no record with the requested id exists in
	// the caller's scope
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates that an operation was refused by a business rule
	// or a concurrent change
	ErrConflict = errors.New("conflict")
)

// ConflictError carries the user-facing reason of a refused operation.
// It matches ErrConflict with errors.Is.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

// Is reports whether target is ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Conflictf builds a ConflictError with a formatted reason
func Conflictf(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}
