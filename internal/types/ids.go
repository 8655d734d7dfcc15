package types

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned by ParseID for anything that is not a positive integer
var ErrInvalidID = errors.New("invalid id")

// ParseID converts a form or path value into a record id.
// Only positive base-10 integers are accepted.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParseOptionalID is ParseID for values that may be absent.
// An empty string yields nil without error.
func ParseOptionalID(s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	id, err := ParseID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
