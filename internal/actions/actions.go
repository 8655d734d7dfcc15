// Package actions dispatches row actions posted from list views.
//
// A list form posts one field per row button, named "action-<name>" with the
// record id as its value. Handle wraps the list view: it resolves the record,
// runs the registered function for <name>, and then redirects back to the
// list (or, for XMLHttpRequest posts, re-renders it in place).
package actions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/messages"
	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/records"
	"github.com/thenoetrevino/tcm/internal/types"
)

// FieldPrefix marks a POST field as an action request
const FieldPrefix = "action-"

// maxFormMemory bounds the multipart parts held in memory
const maxFormMemory = 10 << 20

// Func performs one named action on a record
type Func[T records.Record] func(ctx context.Context, rec T) error

// Registry maps each allowed action name to its implementation.
// Names missing from the registry are ignored.
type Registry[T records.Record] map[string]Func[T]

// Names returns the registered action names in lexical order
func (r Registry[T]) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Loader resolves a record by id within the principal's company.
// It returns an error matching models.ErrNotFound for unknown ids.
type Loader[T records.Record] interface {
	GetByID(ctx context.Context, p auth.Principal, id int) (T, error)
}

// LoaderFunc adapts a lookup function to Loader
type LoaderFunc[T records.Record] func(ctx context.Context, p auth.Principal, id int) (T, error)

func (f LoaderFunc[T]) GetByID(ctx context.Context, p auth.Principal, id int) (T, error) {
	return f(ctx, p, id)
}

// Request is the action parsed from a POST body
type Request struct {
	Name string
	ID   string
}

// Parse picks the action field of a POST form. When several action fields are
// present the lexically first field name wins.
func Parse(form url.Values) (Request, bool) {
	var keys []string
	for key := range form {
		if strings.HasPrefix(key, FieldPrefix) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return Request{}, false
	}
	slices.Sort(keys)
	key := keys[0]
	return Request{Name: strings.TrimPrefix(key, FieldPrefix), ID: form.Get(key)}, true
}

// IsAjax reports whether the request came from XMLHttpRequest
func IsAjax(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

// Handle returns middleware that runs list actions before the wrapped view
func Handle[T records.Record](loader Loader[T], registry Registry[T], opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, hasPrincipal := auth.FromContext(r.Context())
			if hasPrincipal && cfg.permission != "" && !principal.HasPerm(cfg.permission) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}

			taken, err := dispatch(r, principal, loader, registry, cfg)
			if err != nil {
				cfg.logger.Error("action failed", "path", r.URL.Path, "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !taken && cfg.fallThrough {
				next.ServeHTTP(w, r)
				return
			}
			if IsAjax(r) {
				next.ServeHTTP(w, asGet(r))
				return
			}
			http.Redirect(w, r, r.URL.RequestURI(), http.StatusFound)
		})
	}
}

// dispatch runs the posted action, if any. A conflict is reported to the
// user and still counts as taken.
func dispatch[T records.Record](r *http.Request, p auth.Principal, loader Loader[T], registry Registry[T], cfg *config) (bool, error) {
	req, ok := Parse(r.PostForm)
	if !ok {
		return false, nil
	}
	fn, ok := registry[req.Name]
	if !ok {
		cfg.logger.Debug("ignoring unknown action", "action", req.Name)
		return false, nil
	}

	id, err := types.ParseID(req.ID)
	if err != nil {
		cfg.logger.Debug("ignoring action with malformed id", "action", req.Name, "id", req.ID)
		return false, nil
	}

	ctx := r.Context()
	rec, err := loader.GetByID(ctx, p, id)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load record %d for %s: %w", id, req.Name, err)
	}

	err = fn(ctx, rec)
	cfg.observe(req.Name, err)
	if errors.Is(err, models.ErrConflict) {
		messages.FromContext(ctx).Error(ConflictMessage(err, rec))
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s %s %d: %w", req.Name, rec.Kind(), id, err)
	}

	cfg.logger.Info("action taken", "action", req.Name, "kind", rec.Kind(), "id", id)
	return true, nil
}

// ConflictMessage renders a refused action for display next to the list
func ConflictMessage(err error, rec records.Record) string {
	reason := err.Error()
	var conflict *models.ConflictError
	if errors.As(err, &conflict) {
		reason = conflict.Reason
	}
	return rec.String() + ": " + reason
}

// asGet derives the request the view sees after an AJAX action: same URL,
// method GET, no body.
func asGet(r *http.Request) *http.Request {
	r2 := r.Clone(r.Context())
	r2.Method = http.MethodGet
	r2.Body = http.NoBody
	r2.ContentLength = 0
	r2.Header.Del("Content-Type")
	r2.PostForm = url.Values{}
	r2.Form = r.URL.Query()
	return r2
}
