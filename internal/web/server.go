package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/thenoetrevino/tcm/internal/config"
)

// Server runs the site over HTTP until its context is cancelled
type Server struct {
	httpServer      *http.Server
	listener        net.Listener
	logger          *slog.Logger
	shutdownTimeout time.Duration
	shutdownOnce    sync.Once
}

// NewServer binds the listen address. Port 0 picks a free port; see Addr.
func NewServer(cfg config.ServerConfig, h http.Handler, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	return &Server{
		httpServer: &http.Server{
			Handler:           h,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		listener:        listener,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// Addr returns the bound address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start serves requests until ctx is done or serving fails, then shuts down
// gracefully
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("server starting", "addr", s.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("server context cancelled, shutting down")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve error", "error", err)
			_ = s.Shutdown()
			return err
		}
	}

	return s.Shutdown()
}

// Shutdown stops accepting connections and waits for in-flight requests,
// up to the configured timeout. Safe to call more than once.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		timeout := s.shutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err = s.httpServer.Shutdown(ctx)
		s.logger.Info("server stopped")
	})
	return err
}
