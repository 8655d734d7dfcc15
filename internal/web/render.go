package web

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"
)

//go:embed all:templates
var templateFS embed.FS

// Renderer executes pongo2 templates from the embedded templates directory
type Renderer struct {
	set *pongo2.TemplateSet
}

// NewRenderer loads templates from fsys, or from the embedded set when nil
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	if fsys == nil {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("web: open embedded templates: %w", err)
		}
		fsys = sub
	}
	return &Renderer{set: pongo2.NewSet("tcm", rootLoader{fs: pongo2.NewFSLoader(fsys)})}, nil
}

// rootLoader resolves every template name from the root of the template
// directory, so "base.html" means the same file from any including template.
// pongo2's FSLoader resolves names against the including template's directory.
type rootLoader struct {
	fs *pongo2.FSLoader
}

func (l rootLoader) Abs(base, name string) string {
	return path.Clean(strings.TrimPrefix(name, "/"))
}

func (l rootLoader) Get(name string) (io.Reader, error) {
	return l.fs.Get(name)
}

// Render executes the named template and writes it with status. Nothing is
// written if the template fails.
func (rn *Renderer) Render(w http.ResponseWriter, status int, name string, data pongo2.Context) error {
	tmpl, err := rn.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("web: load template %s: %w", name, err)
	}
	out, err := tmpl.ExecuteBytes(data)
	if err != nil {
		return fmt.Errorf("web: execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(out)
	return err
}
