// Package admin implements the database maintenance commands
package admin

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tcm/internal/cli"
	"github.com/thenoetrevino/tcm/internal/cli/styles"
	"github.com/thenoetrevino/tcm/internal/database"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo company, admin user and products",
		Long: `Insert a demo company with an admin user holding every permission and
a small product catalogue. Running it again changes nothing.`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := cli.SettingsFromContext(ctx).Config

	// opening the database applies pending migrations
	cliInstance, err := cli.NewCLI(ctx, cfg)
	if err != nil {
		return err
	}
	if err := cliInstance.Close(); err != nil {
		log.Printf("Error closing CLI: %v", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styles.SuccessStyle.Render("Migrated"), cfg.Database.Path)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := cli.SettingsFromContext(ctx).Config

	cliInstance, err := cli.NewCLI(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	if err := database.Seed(ctx, cliInstance.Repo, cfg.AdminUser); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s company %s with admin user %s\n",
		styles.SuccessStyle.Render("Seeded"), database.DemoCompany, cfg.AdminUser)
	return nil
}
