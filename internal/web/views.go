package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/thenoetrevino/tcm/internal/actions"
	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/finder"
	"github.com/thenoetrevino/tcm/internal/messages"
	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
	cycleservice "github.com/thenoetrevino/tcm/internal/services/cycle"
	"github.com/thenoetrevino/tcm/internal/types"
)

// listActions are offered on every manage list
var listActions = []string{"activate", "deactivate", "clone", "delete"}

// listPage describes one manage list view
type listPage struct {
	title    string
	template string
	source   records.Source
	// filters are query parameters applied as equality filters on source
	filters []string
	finder  *finder.Finder
}

func (s *Site) productsPage() listPage {
	return listPage{
		title:    "Products",
		template: "manage/products.html",
		source:   s.app.Repo().Products(),
		finder:   s.caseFinder,
	}
}

func (s *Site) suitesPage() listPage {
	return listPage{
		title:    "Suites",
		template: "manage/suites.html",
		source:   s.app.Repo().Suites(),
		filters:  []string{"product"},
		finder:   s.caseFinder,
	}
}

func (s *Site) casesPage() listPage {
	return listPage{
		title:    "Cases",
		template: "manage/cases.html",
		source:   s.app.Repo().Cases(),
		filters:  []string{"product", "suite"},
		finder:   s.caseFinder,
	}
}

func (s *Site) cyclesPage() listPage {
	return listPage{
		title:    "Cycles",
		template: "manage/cycles.html",
		source:   s.app.Repo().Cycles(),
		filters:  []string{"product"},
		finder:   s.cycleFinder,
	}
}

// row is a record flattened for templates
type row struct {
	ID       int
	Name     string
	Kind     string
	Status   string
	GotoURL  string
	ChildURL string
}

func newRow(rec records.Record) row {
	r := row{ID: rec.GetID(), Name: rec.String(), Kind: string(rec.Kind())}
	switch v := rec.(type) {
	case *models.Product:
		r.Status = string(v.Status)
	case *models.Suite:
		r.Status = string(v.Status)
	case *models.Case:
		r.Status = string(v.Status)
	case *models.Cycle:
		r.Status = string(v.Status)
	}
	return r
}

func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	target, err := s.router.Reverse("manage_products")
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// list renders a manage list, or a single finder column when the query
// asks for one
func (s *Site) list(page func() listPage) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.renderList(w, r, page(), nil)
	})
}

func (s *Site) renderList(w http.ResponseWriter, r *http.Request, page listPage, extra pongo2.Context) {
	ctx := r.Context()
	p, _ := auth.FromContext(ctx)
	query := r.URL.Query()

	if query.Get("finder") != "" {
		s.finderColumn(w, r, page.finder, p)
		return
	}

	q := page.source.Ours(p)
	active := make(map[string]int)
	for _, field := range page.filters {
		raw := query.Get(field)
		if raw == "" {
			continue
		}
		id, err := types.ParseID(raw)
		if err != nil {
			http.Error(w, "bad "+field+" filter", http.StatusBadRequest)
			return
		}
		q = q.Filter(field, id)
		active[field] = id
	}

	recs, err := q.Fetch(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	rows := make([]row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, newRow(rec))
	}

	root, err := page.finder.Load(ctx, p, page.finder.Root().Name, nil)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := pongo2.Context{
		"title":   page.title,
		"rows":    rows,
		"actions": listActions,
		"filters": active,
		"finder":  columnContext(root),
	}
	for k, v := range extra {
		data[k] = v
	}
	s.page(w, r, http.StatusOK, page.template, data)
}

// finderColumn renders one column fragment for drill-down requests
// (?finder=1&col=<name>&id=<parent id>)
func (s *Site) finderColumn(w http.ResponseWriter, r *http.Request, f *finder.Finder, p auth.Principal) {
	query := r.URL.Query()
	parentID, err := types.ParseOptionalID(query.Get("id"))
	if err != nil {
		http.Error(w, "bad finder id", http.StatusBadRequest)
		return
	}

	view, err := f.Load(r.Context(), p, query.Get("col"), parentID)
	switch {
	case errors.Is(err, finder.ErrUnknownColumn), errors.Is(err, finder.ErrInvalidQuery):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	if err := s.renderer.Render(w, http.StatusOK, view.Template, pongo2.Context{"column": columnContext(view)}); err != nil {
		s.serverError(w, r, err)
	}
}

func columnContext(view *finder.ColumnView) pongo2.Context {
	rows := make([]row, 0, len(view.Rows))
	for _, fr := range view.Rows {
		rw := newRow(fr.Record)
		rw.GotoURL = fr.GotoURL
		rw.ChildURL = fr.ChildURL
		rows = append(rows, rw)
	}
	return pongo2.Context{"name": view.Name, "template": view.Template, "rows": rows}
}

// cyclesView is the cycle list plus its "new cycle" form. Actions are taken
// first; a POST that carried none reaches here.
func (s *Site) cyclesView() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			s.createCycle(w, r)
			return
		}
		s.renderCycles(w, r)
	})
}

// renderCycles adds the product choices of the new cycle form
func (s *Site) renderCycles(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	products, err := s.app.ProductService.ListProducts(r.Context(), p)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	choices := make([]row, 0, len(products))
	for _, product := range products {
		choices = append(choices, newRow(product))
	}
	s.renderList(w, r, s.cyclesPage(), pongo2.Context{"products": choices})
}

func (s *Site) createCycle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := auth.FromContext(ctx)
	queue := messages.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	productID, err := types.ParseID(r.PostForm.Get("product"))
	if err != nil {
		queue.Error("Choose a product for the new cycle.")
		s.redirectBack(w, r)
		return
	}

	cycle, err := s.app.CycleService.CreateCycle(ctx, p, cycleservice.CreateCycleRequest{
		ProductID:   productID,
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
	})
	switch {
	case errors.Is(err, cycleservice.ErrEmptyName), errors.Is(err, cycleservice.ErrNameTooLong):
		queue.Error(capitalize(err.Error()) + ".")
	case errors.Is(err, models.ErrNotFound):
		queue.Error("That product does not exist.")
	case err != nil:
		s.serverError(w, r, err)
		return
	default:
		queue.Success("Created cycle " + cycle.Name + ".")
	}

	if actions.IsAjax(r) {
		r2 := r.Clone(ctx)
		r2.Method = http.MethodGet
		s.renderCycles(w, r2)
		return
	}
	s.redirectBack(w, r)
}

// productCycles lists the active cycles testers can run for a product
func (s *Site) productCycles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := auth.FromContext(ctx)

	id, err := types.ParseID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, cycles, err := s.app.CycleService.ActiveCycles(ctx, p, id)
	if errors.Is(err, models.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	rows := make([]row, 0, len(cycles))
	for _, c := range cycles {
		rows = append(rows, newRow(c))
	}
	s.page(w, r, http.StatusOK, "testexecution/cycles.html", pongo2.Context{
		"title":   product.Name + " test cycles",
		"product": newRow(product),
		"rows":    rows,
	})
}

// page renders a full page, adding the chrome every page shows
func (s *Site) page(w http.ResponseWriter, r *http.Request, status int, name string, data pongo2.Context) {
	ctx := r.Context()
	if p, ok := auth.FromContext(ctx); ok {
		data["user"] = p.Username
	}
	data["messages"] = messages.FromContext(ctx).Drain()
	data["nav"] = s.nav()

	if err := s.renderer.Render(w, status, name, data); err != nil {
		s.serverError(w, r, err)
	}
}

func (s *Site) nav() map[string]string {
	nav := make(map[string]string)
	for _, name := range []string{"manage_products", "manage_suites", "manage_cases", "manage_cycles"} {
		if path, err := s.router.Reverse(name); err == nil {
			nav[strings.TrimPrefix(name, "manage_")] = path
		}
	}
	return nav
}

func (s *Site) redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, r.URL.RequestURI(), http.StatusFound)
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
