package cli

import (
	"context"

	"github.com/thenoetrevino/tcm/internal/config"
)

// Settings are resolved once by the root command and read by every subcommand
type Settings struct {
	Config *config.Config
	// User is the username commands act as; empty means Config.AdminUser
	User string
}

type settingsKey struct{}

// WithSettings returns a copy of ctx carrying s
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// SettingsFromContext returns the settings in ctx, falling back to the
// default configuration
func SettingsFromContext(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)
	if s.Config == nil {
		s.Config = config.Default()
	}
	return s
}

// GetCLIFromContext opens the CLI described by the settings in ctx
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	return NewCLI(ctx, SettingsFromContext(ctx).Config)
}
