// Package web serves the management and test execution pages
package web

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/tcm/internal/actions"
	"github.com/thenoetrevino/tcm/internal/app"
	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/finder"
	"github.com/thenoetrevino/tcm/internal/messages"
	"github.com/thenoetrevino/tcm/internal/models"
)

// Site wires routes, middleware and views around the application services
type Site struct {
	app      *app.App
	router   *Router
	renderer *Renderer
	metrics  *Metrics
	logger   *slog.Logger
	handler  http.Handler

	// products -> suites -> cases
	caseFinder *finder.Finder
	// products -> cycles
	cycleFinder *finder.Finder
}

// Option configures New
type Option func(*siteConfig)

type siteConfig struct {
	logger    *slog.Logger
	templates fs.FS
}

// WithLogger sets the logger for requests and actions
func WithLogger(logger *slog.Logger) Option {
	return func(c *siteConfig) { c.logger = logger }
}

// WithTemplates replaces the embedded templates
func WithTemplates(fsys fs.FS) Option {
	return func(c *siteConfig) { c.templates = fsys }
}

// New builds the site. Messages are kept in store between requests.
func New(a *app.App, store *messages.Store, opts ...Option) (*Site, error) {
	cfg := &siteConfig{logger: a.Logger}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	renderer, err := NewRenderer(cfg.templates)
	if err != nil {
		return nil, err
	}

	s := &Site{
		app:      a,
		router:   NewRouter(),
		renderer: renderer,
		metrics:  NewMetrics(),
		logger:   cfg.logger.With("component", "web"),
	}
	s.metrics.sessions = store.Len

	s.routes()
	if err := s.buildFinders(); err != nil {
		return nil, err
	}

	s.handler = chain(s.router,
		recoverPanics(s.logger),
		logRequests(s.logger, s.metrics),
		messages.Middleware(store),
		auth.Middleware(a.Repo(), s.logger),
	)
	return s, nil
}

func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Metrics returns the live counters
func (s *Site) Metrics() *Metrics {
	return s.metrics
}

// Router exposes route reversal
func (s *Site) Router() *Router {
	return s.router
}

func (s *Site) buildFinders() error {
	repo := s.app.Repo()

	var err error
	s.caseFinder, err = finder.New("finder", s.router,
		finder.Column{Name: "product", Template: "_products.html", Source: repo.Products(), Goto: "manage_suites"},
		finder.Column{Name: "suite", Template: "_suites.html", Source: repo.Suites(), LinkField: "product", Goto: "manage_cases"},
		finder.Column{Name: "case", Template: "_cases.html", Source: repo.Cases(), LinkField: "suite"},
	)
	if err != nil {
		return fmt.Errorf("web: case finder: %w", err)
	}

	s.cycleFinder, err = finder.New("finder", s.router,
		finder.Column{Name: "product", Template: "_products.html", Source: repo.Products(), Goto: "manage_cycles"},
		finder.Column{Name: "cycle", Template: "_cycles.html", Source: repo.Cycles(), LinkField: "product", Order: []string{"-created", "name"}},
	)
	if err != nil {
		return fmt.Errorf("web: cycle finder: %w", err)
	}
	return nil
}

func (s *Site) actionOptions(permission string) []actions.Option {
	return []actions.Option{
		actions.WithPermission(permission),
		actions.WithLogger(s.logger),
		actions.WithObserver(s.metrics.ObserveAction),
	}
}

func (s *Site) routes() {
	a := s.app
	login := auth.RequireLogin

	s.router.Handle("home", http.MethodGet, "/{$}", http.HandlerFunc(s.home))
	s.router.Handle("metrics", http.MethodGet, "/debug/metrics", s.metrics)

	s.router.Handle("product_cycles", http.MethodGet, "/products/{id}/cycles/{$}",
		login(http.HandlerFunc(s.productCycles)))

	products := actions.Handle(
		actions.LoaderFunc[*models.Product](a.ProductService.GetProductByID),
		actions.Registry[*models.Product]{
			"activate":   a.ProductService.Activate,
			"deactivate": a.ProductService.Deactivate,
			"clone":      a.ProductService.Clone,
			"delete":     a.ProductService.Delete,
		},
		s.actionOptions(models.PermManageProducts)...,
	)
	s.router.Handle("manage_products", "", "/manage/products/{$}",
		login(products(s.list(s.productsPage))))

	suites := actions.Handle(
		actions.LoaderFunc[*models.Suite](a.SuiteService.GetSuiteByID),
		actions.Registry[*models.Suite]{
			"activate":   a.SuiteService.Activate,
			"deactivate": a.SuiteService.Deactivate,
			"clone":      a.SuiteService.Clone,
			"delete":     a.SuiteService.Delete,
		},
		s.actionOptions(models.PermManageSuites)...,
	)
	s.router.Handle("manage_suites", "", "/manage/suites/{$}",
		login(suites(s.list(s.suitesPage))))

	cases := actions.Handle(
		actions.LoaderFunc[*models.Case](a.CaseService.GetCaseByID),
		actions.Registry[*models.Case]{
			"activate":   a.CaseService.Activate,
			"deactivate": a.CaseService.Deactivate,
			"clone":      a.CaseService.Clone,
			"delete":     a.CaseService.Delete,
		},
		s.actionOptions(models.PermManageCases)...,
	)
	s.router.Handle("manage_cases", "", "/manage/cases/{$}",
		login(cases(s.list(s.casesPage))))

	cycles := actions.Handle(
		actions.LoaderFunc[*models.Cycle](a.CycleService.GetCycleByID),
		actions.Registry[*models.Cycle]{
			"activate":   a.CycleService.Activate,
			"deactivate": a.CycleService.Deactivate,
			"clone":      a.CycleService.Clone,
			"delete":     a.CycleService.Delete,
		},
		append(s.actionOptions(models.PermManageCycles), actions.WithFallThrough())...,
	)
	s.router.Handle("manage_cycles", "", "/manage/cycles/{$}",
		login(cycles(s.cyclesView())))
}
