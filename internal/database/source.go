package database

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
)

// table describes how one record kind is stored. Only the fields listed in
// fields can be filtered or sorted on, so query SQL never contains
// caller-supplied identifiers.
type table struct {
	name    string
	kind    models.Kind
	columns string            // SELECT list, in scan order
	fields  map[string]string // public field name -> column
	order   []string          // default ORDER BY columns
	scan    func(rowScanner) (records.Record, error)
}

var (
	_ records.Source = (*Source)(nil)
	_ records.Query  = (*Query)(nil)
)

// Source is a records.Source backed by one table
type Source struct {
	db *sql.DB
	t  *table
}

func newSource(db *sql.DB, t *table) *Source {
	return &Source{db: db, t: t}
}

func (s *Source) Kind() models.Kind { return s.t.kind }

func (s *Source) All() records.Query {
	return &Query{db: s.db, t: s.t}
}

// Ours scopes the query to the principal's company
func (s *Source) Ours(p auth.Principal) records.Query {
	return s.All().Filter("company", p.CompanyID)
}

type clause struct {
	column string
	value  any // nil matches NULL
}

// Query is an immutable SELECT over one table
type Query struct {
	db    *sql.DB
	t     *table
	where []clause
	order []string
	err   error
}

func (q *Query) clone() *Query {
	return &Query{
		db:    q.db,
		t:     q.t,
		where: slices.Clone(q.where),
		order: slices.Clone(q.order),
		err:   q.err,
	}
}

func (q *Query) Filter(field string, value any) records.Query {
	next := q.clone()
	column, ok := q.t.fields[field]
	if !ok {
		if next.err == nil {
			next.err = fmt.Errorf("%s: filter on %q: %w", q.t.kind, field, records.ErrUnknownField)
		}
		return next
	}
	next.where = append(next.where, clause{column: column, value: sqlValue(value)})
	return next
}

// Sort replaces any previous ordering
func (q *Query) Sort(fields ...string) records.Query {
	next := q.clone()
	next.order = next.order[:0]
	for _, field := range fields {
		desc := strings.HasPrefix(field, "-")
		column, ok := q.t.fields[strings.TrimPrefix(field, "-")]
		if !ok {
			if next.err == nil {
				next.err = fmt.Errorf("%s: sort on %q: %w", q.t.kind, field, records.ErrUnknownField)
			}
			return next
		}
		if desc {
			column += " DESC"
		}
		next.order = append(next.order, column)
	}
	return next
}

// SQL renders the statement and its arguments
func (q *Query) SQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", q.t.columns, q.t.name)

	args := make([]any, 0, len(q.where))
	for i, c := range q.where {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		if c.value == nil {
			b.WriteString(c.column + " IS NULL")
			continue
		}
		b.WriteString(c.column + " = ?")
		args = append(args, c.value)
	}

	order := q.order
	if len(order) == 0 {
		order = q.t.order
	}
	if !slices.Contains(order, "id") {
		order = append(slices.Clone(order), "id")
	}
	b.WriteString(" ORDER BY " + strings.Join(order, ", "))

	return b.String(), args, nil
}

func (q *Query) Fetch(ctx context.Context) ([]records.Record, error) {
	query, args, err := q.SQL()
	if err != nil {
		return nil, err
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", q.t.kind, err)
	}
	defer closeRows(rows)

	var out []records.Record
	for rows.Next() {
		rec, err := q.t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", q.t.kind, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", q.t.kind, err)
	}
	return out, nil
}

// sqlValue normalizes domain values into driver values
func sqlValue(v any) any {
	switch v := v.(type) {
	case models.Status:
		return string(v)
	case models.Kind:
		return string(v)
	case *int:
		if v == nil {
			return nil
		}
		return *v
	default:
		return v
	}
}
