// Package cli holds the state shared by tcm's subcommands
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tcm/internal/app"
	"github.com/thenoetrevino/tcm/internal/auth"
	"github.com/thenoetrevino/tcm/internal/config"
	"github.com/thenoetrevino/tcm/internal/database"
	"github.com/thenoetrevino/tcm/internal/logging"
	"github.com/thenoetrevino/tcm/internal/models"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Repo   *database.Repository
	Config *config.Config
}

// NewCLI opens the configured database and builds the application on top of it
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := database.NewRepository(db)

	return &CLI{
		App:    app.New(repo, app.WithLogger(logging.Logger)),
		Repo:   repo,
		Config: cfg,
	}, nil
}

// Principal resolves the user a command acts as. An empty username means the
// configured admin user.
func (c *CLI) Principal(ctx context.Context, username string) (auth.Principal, error) {
	if username == "" {
		username = c.Config.AdminUser
	}
	u, err := c.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return auth.Principal{}, err
	}
	return auth.FromUser(u), nil
}

// Open builds the CLI from the settings in ctx and resolves the acting user.
// Failures are reported through f.
func Open(ctx context.Context, f *OutputFormatter) (*CLI, auth.Principal, error) {
	s := SettingsFromContext(ctx)
	c, err := NewCLI(ctx, s.Config)
	if err != nil {
		return nil, auth.Principal{}, f.Fail(ExitError, "INITIALIZATION_ERROR", err, "")
	}

	p, err := c.Principal(ctx, s.User)
	if err != nil {
		_ = c.Close()
		if errors.Is(err, models.ErrNotFound) {
			return nil, auth.Principal{}, f.Fail(ExitNotFound, "USER_NOT_FOUND", err,
				"Run 'tcm seed' to create the admin user, or pass --user")
		}
		return nil, auth.Principal{}, f.Fail(ExitError, "USER_LOOKUP_ERROR", err, "")
	}
	return c, p, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
