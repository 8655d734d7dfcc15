// Package serve implements "tcm serve", the web server command
package serve

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tcm/internal/cli"
	"github.com/thenoetrevino/tcm/internal/logging"
	"github.com/thenoetrevino/tcm/internal/messages"
	"github.com/thenoetrevino/tcm/internal/web"
	"golang.org/x/sync/errgroup"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the test case management web server until interrupted.

Examples:
  tcm serve
  tcm serve --addr=0.0.0.0:9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg := cli.SettingsFromContext(ctx).Config
	server := cfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		server.Addr = addr
	}

	cliInstance, err := cli.NewCLI(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	store := messages.NewStore(cfg.Session.TTL)
	site, err := web.New(cliInstance.App, store, web.WithLogger(logging.Logger))
	if err != nil {
		return fmt.Errorf("failed to build site: %w", err)
	}

	srv, err := web.NewServer(server, site, logging.Logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", srv.Addr())

	return run(ctx, srv, store, cfg.Session.ReapInterval)
}

// run serves and reaps idle sessions until ctx is done or either fails
func run(ctx context.Context, srv *web.Server, store *messages.Store, reapInterval time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		return store.Run(gctx, reapInterval)
	})
	return g.Wait()
}
