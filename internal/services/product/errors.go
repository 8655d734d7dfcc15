package product

import "errors"

// Domain errors for product service
var (
	// Validation errors
	ErrEmptyName        = errors.New("product name cannot be empty")
	ErrNameTooLong      = errors.New("product name cannot exceed 100 characters")
	ErrInvalidProductID = errors.New("invalid product ID")
)
