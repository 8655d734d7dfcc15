package app

import (
	"log/slog"

	"github.com/thenoetrevino/tcm/internal/database"
	cycleservice "github.com/thenoetrevino/tcm/internal/services/cycle"
	productservice "github.com/thenoetrevino/tcm/internal/services/product"
	suiteservice "github.com/thenoetrevino/tcm/internal/services/suite"
	caseservice "github.com/thenoetrevino/tcm/internal/services/testcase"
)

// App holds all application services and provides dependency injection.
// This is the main application container shared by the web server and the CLI.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	Logger *slog.Logger

	// Service layer (business logic)
	ProductService productservice.Service
	SuiteService   suiteservice.Service
	CaseService    caseservice.Service
	CycleService   cycleservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return &App{
		repo:           repo,
		Logger:         cfg.logger,
		ProductService: productservice.NewService(repo, cfg.logger),
		SuiteService:   suiteservice.NewService(repo, cfg.logger),
		CaseService:    caseservice.NewService(repo, cfg.logger),
		CycleService:   cycleservice.NewService(repo, cfg.logger),
	}
}

// Repo returns the underlying repository. The web layer lists records
// through its record sources.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Close releases the repository's database
func (a *App) Close() error {
	return a.repo.Close()
}
