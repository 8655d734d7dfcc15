package suite

import "errors"

// Domain errors for suite service
var (
	ErrEmptyName      = errors.New("suite name cannot be empty")
	ErrNameTooLong    = errors.New("suite name cannot exceed 100 characters")
	ErrInvalidSuiteID = errors.New("invalid suite ID")
)
