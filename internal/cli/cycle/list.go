package cycle

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tcm/internal/cli"
	"github.com/thenoetrevino/tcm/internal/cli/styles"
	"github.com/thenoetrevino/tcm/internal/models"
)

// ListCmd returns the cycle list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the test cycles of a product",
		Long: `List the test cycles of a product, newest first.

Examples:
  tcm cycle list --product=1
  tcm cycle list --product=1 --active --json`,
		RunE: runList,
	}

	cmd.Flags().Int("product", 0, "Product ID (required)")
	cmd.Flags().Bool("active", false, "Only cycles testers can run")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	productID, _ := cmd.Flags().GetInt("product")
	activeOnly, _ := cmd.Flags().GetBool("active")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if productID <= 0 {
		return formatter.Fail(cli.ExitUsage, "INVALID_PRODUCT_ID",
			errors.New("product ID must be a positive integer"),
			"Usage: tcm cycle list --product=<id>")
	}

	cliInstance, principal, err := cli.Open(ctx, formatter)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	var (
		product *models.Product
		cycles  []*models.Cycle
	)
	if activeOnly {
		product, cycles, err = cliInstance.App.CycleService.ActiveCycles(ctx, principal, productID)
	} else {
		product, err = cliInstance.App.ProductService.GetProductByID(ctx, principal, productID)
		if err == nil {
			cycles, err = cliInstance.App.CycleService.ListCycles(ctx, principal, productID)
		}
	}
	switch {
	case errors.Is(err, models.ErrNotFound):
		return formatter.Fail(cli.ExitNotFound, "PRODUCT_NOT_FOUND",
			fmt.Errorf("product %d not found", productID), "Run 'tcm product list' to see product IDs")
	case err != nil:
		return formatter.Fail(cli.ExitError, "CYCLE_FETCH_ERROR", err, "")
	}

	if quietMode {
		for _, c := range cycles {
			fmt.Printf("%d\n", c.ID)
		}
		return nil
	}

	if jsonOutput {
		out := make([]map[string]any, 0, len(cycles))
		for _, c := range cycles {
			out = append(out, cli.Fields(c))
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"product": cli.Fields(product),
			"cycles":  out,
		})
	}

	fmt.Println(styles.TitleStyle.Render(product.Name))
	if len(cycles) == 0 {
		fmt.Println("No cycles found")
		return nil
	}
	for _, c := range cycles {
		fmt.Printf("  %s\n", cli.RecordLine(c))
	}

	return nil
}
