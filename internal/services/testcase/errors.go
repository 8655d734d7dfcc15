package testcase

import "errors"

// Domain errors for test case service
var (
	ErrEmptyName     = errors.New("case name cannot be empty")
	ErrNameTooLong   = errors.New("case name cannot exceed 200 characters")
	ErrInvalidCaseID = errors.New("invalid case ID")
	ErrSuiteMismatch = errors.New("suite belongs to a different product")
)
