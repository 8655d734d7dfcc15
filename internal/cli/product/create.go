package product

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tcm/internal/cli"
	"github.com/thenoetrevino/tcm/internal/cli/styles"
	productservice "github.com/thenoetrevino/tcm/internal/services/product"
)

// CreateCmd returns the product create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new product",
		Long: `Create a new product in draft status.

Examples:
  # Human-readable output
  tcm product create --name="Firefox"

  # JSON output for agents
  tcm product create --name="Firefox" --json

  # Quiet mode for bash capture
  PRODUCT_ID=$(tcm product create --name="Firefox" --quiet)`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Product name (required)")
	cmd.Flags().String("description", "", "Product description")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, principal, err := cli.Open(ctx, formatter)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	product, err := cliInstance.App.ProductService.CreateProduct(ctx, principal, productservice.CreateProductRequest{
		Name:        name,
		Description: description,
	})
	switch {
	case errors.Is(err, productservice.ErrEmptyName):
		return formatter.Fail(cli.ExitValidation, "INVALID_NAME", err, "Pass --name")
	case errors.Is(err, productservice.ErrNameTooLong):
		return formatter.Fail(cli.ExitValidation, "INVALID_NAME", err, "")
	case err != nil:
		return formatter.Fail(cli.ExitError, "PRODUCT_CREATE_ERROR", err, "")
	}

	if quietMode || jsonOutput {
		return formatter.Success(product)
	}

	fmt.Printf("%s %s\n", styles.SuccessStyle.Render("Created"), cli.RecordLine(product))
	return nil
}
