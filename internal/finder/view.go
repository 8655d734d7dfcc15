package finder

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/records"
)

// Row is one record of a loaded column with its navigation links
type Row struct {
	Record   records.Record
	GotoURL  string
	ChildURL string
}

// ColumnView is a fetched column ready for its template
type ColumnView struct {
	Name     string
	Template string
	ParentID *int
	Rows     []Row
}

// Load fetches the named column and resolves each row's links
func (f *Finder) Load(ctx context.Context, p auth.Principal, name string, parentID *int) (*ColumnView, error) {
	tmpl, err := f.ColumnTemplate(name)
	if err != nil {
		return nil, err
	}
	q, err := f.Objects(p, name, parentID)
	if err != nil {
		return nil, err
	}
	recs, err := q.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load finder column %q: %w", name, err)
	}

	view := &ColumnView{Name: name, Template: tmpl, ParentID: parentID, Rows: make([]Row, 0, len(recs))}
	for _, rec := range recs {
		row := Row{Record: rec}
		row.GotoURL, _ = f.GotoURL(rec)
		row.ChildURL, _ = f.ChildQueryURL(rec)
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}
