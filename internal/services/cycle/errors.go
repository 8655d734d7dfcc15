package cycle

import "errors"

// Domain errors for cycle service
var (
	ErrEmptyName      = errors.New("cycle name cannot be empty")
	ErrNameTooLong    = errors.New("cycle name cannot exceed 100 characters")
	ErrInvalidCycleID = errors.New("invalid cycle ID")
)
