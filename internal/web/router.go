package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoRoute is returned when reversing a name no route was registered under
var ErrNoRoute = errors.New("no such route")

// Router is a ServeMux whose routes carry names, so handlers and the finder
// can build links without hard-coding paths.
type Router struct {
	mux   *http.ServeMux
	paths map[string]string // name -> pattern path
}

func NewRouter() *Router {
	return &Router{mux: http.NewServeMux(), paths: make(map[string]string)}
}

// Handle registers h for method and path under name. An empty method matches
// every method. path uses ServeMux syntax ("/products/{id}/cycles/{$}").
func (rt *Router) Handle(name, method, path string, h http.Handler) {
	if _, dup := rt.paths[name]; dup {
		panic(fmt.Sprintf("web: route %q registered twice", name))
	}
	rt.paths[name] = path

	pattern := path
	if method != "" {
		pattern = method + " " + path
	}
	rt.mux.Handle(pattern, h)
}

// Reverse returns the path of a route without wildcards
func (rt *Router) Reverse(name string) (string, error) {
	return rt.URL(name)
}

// URL returns the path of a route, substituting args for its wildcards in order
func (rt *Router) URL(name string, args ...any) (string, error) {
	path, ok := rt.paths[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoRoute, name)
	}
	path = strings.TrimSuffix(path, "{$}")

	var b strings.Builder
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			b.WriteString(path)
			break
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("route %q: malformed pattern", name)
		}
		if len(args) == 0 {
			return "", fmt.Errorf("route %q: missing value for %s", name, path[start:start+end+1])
		}
		b.WriteString(path[:start])
		fmt.Fprint(&b, args[0])
		args = args[1:]
		path = path[start+end+1:]
	}
	if len(args) > 0 {
		return "", fmt.Errorf("route %q: %d unused values", name, len(args))
	}
	return b.String(), nil
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}
