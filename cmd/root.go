// Package cmd assembles the tcm command tree
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tcm/internal/cli"
	"github.com/thenoetrevino/tcm/internal/cli/admin"
	"github.com/thenoetrevino/tcm/internal/cli/cycle"
	"github.com/thenoetrevino/tcm/internal/cli/product"
	"github.com/thenoetrevino/tcm/internal/cli/serve"
	"github.com/thenoetrevino/tcm/internal/cli/testcase"
	"github.com/thenoetrevino/tcm/internal/config"
	"github.com/thenoetrevino/tcm/internal/logging"
)

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	var closeLog func() error

	rootCmd := &cobra.Command{
		Use:   "tcm",
		Short: "tcm - test case management",
		Long: `tcm manages products, test suites, test cases and test cycles.
Run 'tcm serve' for the web interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			user, _ := cmd.Flags().GetString("user")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			closeLog, err = logging.Init(cfg.Log)
			if err != nil {
				return err
			}

			cmd.SetContext(cli.WithSettings(cmd.Context(), cli.Settings{Config: cfg, User: user}))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLog == nil {
				return nil
			}
			if err := closeLog(); err != nil {
				log.Printf("Error closing log file: %v", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/tcm/config.yaml)")
	rootCmd.PersistentFlags().String("user", "", "Act as this user (default: admin_user from config)")

	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(admin.MigrateCmd())
	rootCmd.AddCommand(admin.SeedCmd())
	rootCmd.AddCommand(product.ProductCmd())
	rootCmd.AddCommand(cycle.CycleCmd())
	rootCmd.AddCommand(testcase.CaseCmd())

	return rootCmd
}

// Execute runs the command named by os.Args
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}
