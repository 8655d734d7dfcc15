package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thenoetrevino/tcm/internal/config"
)

// Logger is the global slog instance for the application
var Logger = slog.Default()

// Init configures the global logger from cfg. Logs go to cfg.File in append
// mode, or to stderr when no file is configured. Uses text format for human
// readability. The returned function closes the log file.
func Init(cfg config.LogConfig) (func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		out, closeFn = file, file.Close
	}

	Logger = New(out, level)
	slog.SetDefault(Logger)

	// Redirect standard log package output (net/http server errors) to the same place
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	return closeFn, nil
}

// New builds a text logger at level
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps a config level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
