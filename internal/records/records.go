// Package records defines the record-source contract shared by storage and
// the finder: composable, immutable queries over one kind of record.
package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/models"
)

// ErrUnknownField is reported by Fetch when a query filtered or sorted on a
// field its source does not expose
var ErrUnknownField = errors.New("unknown field")

// Record is any stored row the web layer can list and act on
type Record interface {
	fmt.Stringer
	Kind() models.Kind
	GetID() int
}

// Query is an immutable, lazily executed selection of records.
// Every method returns a new Query; the receiver is never modified.
type Query interface {
	// Filter narrows the query to records whose field equals value
	Filter(field string, value any) Query
	// Sort orders results by the given fields; a leading "-" sorts descending
	Sort(fields ...string) Query
	// Fetch executes the query
	Fetch(ctx context.Context) ([]Record, error)
}

// Source produces queries over one kind of record
type Source interface {
	Kind() models.Kind
	// All selects every record regardless of owner
	All() Query
	// Ours selects the records owned by the principal's company
	Ours(p auth.Principal) Query
}
