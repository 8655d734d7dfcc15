package finder

import "errors"

var (
	// ErrUnknownColumn is returned for a column name the finder does not declare
	ErrUnknownColumn = errors.New("unknown finder column")

	// ErrInvalidQuery is returned when a parent id is given for the root
	// column, or missing for any other column
	ErrInvalidQuery = errors.New("invalid finder query")

	// ErrInvalidColumns is returned by New for a declaration it cannot use
	ErrInvalidColumns = errors.New("invalid finder columns")
)
