package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Session  SessionConfig  `yaml:"session"`
	// AdminUser is the account created by `tcm seed`
	AdminUser string `yaml:"admin_user"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// File receives the log; empty means stderr
	File string `yaml:"file"`
}

type SessionConfig struct {
	// TTL is how long an idle session keeps its pending messages
	TTL          time.Duration `yaml:"ttl"`
	ReapInterval time.Duration `yaml:"reap_interval"`
}

// Environment variables that override the file
const (
	EnvDBPath = "TCM_DB_PATH"
	EnvAddr   = "TCM_ADDR"
)

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config at path, or at the default location when path is
// empty. A missing file yields the defaults; a file given explicitly must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			// Return default config if we can't determine config path
			c := Default()
			c.applyEnv()
			return c, nil
		}
		path = p
	}

	var config Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// Fill in any missing values with defaults
	config.applyDefaults()
	config.applyEnv()

	return &config, nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tcm", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tcm", "config.yaml"), nil
}

// dataDir is where the database and log live by default
func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".tcm")
}

// applyDefaults fills in missing configuration with defaults. Durations that
// are zero or negative count as missing.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Path == "" {
		c.Database.Path = filepath.Join(dataDir(), "tcm.db")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 2 * time.Hour
	}
	if c.Session.ReapInterval <= 0 {
		c.Session.ReapInterval = 5 * time.Minute
	}
	if c.AdminUser == "" {
		c.AdminUser = "admin"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}
