// Package auth resolves the user behind a web request and answers
// permission questions about them
package auth

import (
	"context"
	"errors"
	"slices"

	"github.com/thenoetrevino/tcm/internal/models"
)

// ErrForbidden is returned when a principal lacks a required permission
var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated caller of a request.
// CompanyID scopes every record lookup made on its behalf.
type Principal struct {
	UserID      int
	Username    string
	CompanyID   int
	Permissions []string
}

// FromUser builds the principal for a stored user
func FromUser(u *models.User) Principal {
	return Principal{
		UserID:      u.ID,
		Username:    u.Username,
		CompanyID:   u.CompanyID,
		Permissions: slices.Clone(u.Permissions),
	}
}

// HasPerm reports whether the principal was granted the permission codename
func (p Principal) HasPerm(codename string) bool {
	return slices.Contains(p.Permissions, codename)
}

// Require returns ErrForbidden unless the principal holds the permission
func (p Principal) Require(codename string) error {
	if !p.HasPerm(codename) {
		return ErrForbidden
	}
	return nil
}

type principalKey struct{}

// NewContext returns a copy of ctx carrying the principal
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored in ctx, if any
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
