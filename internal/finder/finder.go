// Package finder implements hierarchical drill-down navigation over a chain
// of related records, one column per level (product, suite, case, ...).
//
// Columns are declared in order: each column's parent is the one before it
// and its child the one after it. Selecting a record in one column loads the
// child column filtered to records linked to it.
package finder

import (
	"fmt"
	"maps"
	"net/url"
	"path"
	"slices"
	"strconv"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
)

// DefaultOrder sorts columns that set no Order. Every source must accept
// these fields.
var DefaultOrder = []string{"name", "id"}

// Column is one level of a Finder
type Column struct {
	// Name identifies the column in query strings and must be unique
	Name string
	// Template renders the column, relative to the finder's template base
	Template string
	// Source provides the column's records; its kind must be unique
	Source records.Source
	// LinkField is the field of this column's records that holds the id of
	// the parent column's record. Required for every column but the first.
	LinkField string
	// Goto names the route a record drills into, if any
	Goto string
	// Criteria are fixed filters applied to every listing
	Criteria map[string]any
	// Order sorts listings; empty sorts by DefaultOrder
	Order []string
}

// Objects selects every record of the column's source
func (c Column) Objects() records.Query {
	return c.Source.All()
}

// Reverser resolves a named route to its path
type Reverser interface {
	Reverse(name string) (string, error)
}

// ReverserFunc adapts a function to Reverser
type ReverserFunc func(name string) (string, error)

func (f ReverserFunc) Reverse(name string) (string, error) { return f(name) }

// Finder is an immutable column chain. Safe for concurrent use.
type Finder struct {
	templateBase string
	columns      []Column
	byName       map[string]Column
	byKind       map[models.Kind]Column
	parents      map[string]string
	children     map[string]string
	gotos        map[string]string // column name -> reversed goto path
}

// New validates the columns and derives the lookup maps. Goto routes are
// resolved here so that a bad route name fails at startup.
func New(templateBase string, rev Reverser, columns ...Column) (*Finder, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidColumns)
	}

	f := &Finder{
		templateBase: templateBase,
		columns:      slices.Clone(columns),
		byName:       make(map[string]Column, len(columns)),
		byKind:       make(map[models.Kind]Column, len(columns)),
		parents:      make(map[string]string, len(columns)-1),
		children:     make(map[string]string, len(columns)-1),
		gotos:        make(map[string]string),
	}

	for i, col := range columns {
		if col.Name == "" || col.Source == nil {
			return nil, fmt.Errorf("%w: column %d needs a name and a source", ErrInvalidColumns, i)
		}
		if _, dup := f.byName[col.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrInvalidColumns, col.Name)
		}
		kind := col.Source.Kind()
		if _, dup := f.byKind[kind]; dup {
			return nil, fmt.Errorf("%w: two columns list %s records", ErrInvalidColumns, kind)
		}
		if i > 0 && col.LinkField == "" {
			return nil, fmt.Errorf("%w: column %q has no link field", ErrInvalidColumns, col.Name)
		}
		f.byName[col.Name] = col
		f.byKind[kind] = col

		if i > 0 {
			parent := columns[i-1].Name
			f.parents[col.Name] = parent
			f.children[parent] = col.Name
		}

		if col.Goto != "" {
			if rev == nil {
				return nil, fmt.Errorf("%w: column %q has a goto but no reverser", ErrInvalidColumns, col.Name)
			}
			target, err := rev.Reverse(col.Goto)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q: %w", ErrInvalidColumns, col.Name, err)
			}
			f.gotos[col.Name] = target
		}
	}

	return f, nil
}

// Columns returns the columns in declaration order
func (f *Finder) Columns() []Column {
	return slices.Clone(f.columns)
}

// Root returns the first column
func (f *Finder) Root() Column {
	return f.columns[0]
}

func (f *Finder) ColumnsByName() map[string]Column {
	return maps.Clone(f.byName)
}

func (f *Finder) ColumnsByKind() map[models.Kind]Column {
	return maps.Clone(f.byKind)
}

// ParentColumns maps each column name to its parent's name
func (f *Finder) ParentColumns() map[string]string {
	return maps.Clone(f.parents)
}

// ChildColumns maps each column name to its child's name
func (f *Finder) ChildColumns() map[string]string {
	return maps.Clone(f.children)
}

// ColumnTemplate returns the template path of the named column
func (f *Finder) ColumnTemplate(name string) (string, error) {
	col, ok := f.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return path.Join(f.templateBase, col.Template), nil
}

// Objects builds the listing of the named column for the principal. parentID
// must be nil for the root column and set for every other column.
func (f *Finder) Objects(p auth.Principal, name string, parentID *int) (records.Query, error) {
	col, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	_, hasParent := f.parents[name]
	switch {
	case hasParent && parentID == nil:
		return nil, fmt.Errorf("%w: column %q needs a parent id", ErrInvalidQuery, name)
	case !hasParent && parentID != nil:
		return nil, fmt.Errorf("%w: root column %q takes no parent id", ErrInvalidQuery, name)
	}

	q := col.Source.Ours(p)
	for _, field := range slices.Sorted(maps.Keys(col.Criteria)) {
		q = q.Filter(field, col.Criteria[field])
	}
	order := col.Order
	if len(order) == 0 {
		order = DefaultOrder
	}
	q = q.Sort(order...)
	if hasParent {
		q = q.Filter(col.LinkField, *parentID)
	}
	return q, nil
}

// GotoURL returns where a record drills into: the column's goto route,
// filtered to the record by a parameter named after the column
func (f *Finder) GotoURL(rec records.Record) (string, bool) {
	col, ok := f.byKind[rec.Kind()]
	if !ok {
		return "", false
	}
	target, ok := f.gotos[col.Name]
	if !ok {
		return "", false
	}
	return target + "?" + url.QueryEscape(col.Name) + "=" + strconv.Itoa(rec.GetID()), true
}

// ChildColumnForObject returns the name of the column listing the record's
// children
func (f *Finder) ChildColumnForObject(rec records.Record) (string, bool) {
	col, ok := f.byKind[rec.Kind()]
	if !ok {
		return "", false
	}
	child, ok := f.children[col.Name]
	return child, ok
}

// ChildQueryURL returns the query string that loads the record's children
// into the next column
func (f *Finder) ChildQueryURL(rec records.Record) (string, bool) {
	child, ok := f.ChildColumnForObject(rec)
	if !ok {
		return "", false
	}
	return "?finder=1&col=" + url.QueryEscape(child) + "&id=" + strconv.Itoa(rec.GetID()), true
}
