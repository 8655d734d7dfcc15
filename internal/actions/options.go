package actions

import "log/slog"

// Option configures Handle
type Option func(*config)

// Observer is told about every action function that ran, with its result
type Observer func(action string, err error)

type config struct {
	fallThrough bool
	permission  string
	logger      *slog.Logger
	observers   []Observer
}

func newConfig(opts []Option) *config {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) observe(action string, err error) {
	for _, o := range c.observers {
		o(action, err)
	}
}

// WithFallThrough lets POSTs without a recognized action reach the wrapped
// view untouched, for views that also handle their own forms
func WithFallThrough() Option {
	return func(c *config) { c.fallThrough = true }
}

// WithPermission answers 403 to principals lacking the permission codename
func WithPermission(codename string) Option {
	return func(c *config) { c.permission = codename }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers a callback run after each action function
func WithObserver(o Observer) Option {
	return func(c *config) { c.observers = append(c.observers, o) }
}
