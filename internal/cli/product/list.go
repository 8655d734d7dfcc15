package product

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tcm/internal/cli"
)

// ListCmd returns the product list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long:  "List the products of the acting user's company.",
		RunE:  runList,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	products, err := cliInstance.App.ProductService.ListProducts(ctx, principal)
	if err != nil {
		return formatter.Fail(cli.ExitError, "PRODUCT_FETCH_ERROR", err, "")
	}

	if quietMode {
		for _, p := range products {
			fmt.Printf("%d\n", p.ID)
		}
		return nil
	}

	if jsonOutput {
		out := make([]map[string]any, 0, len(products))
		for _, p := range products {
			out = append(out, cli.Fields(p))
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":  true,
			"products": out,
		})
	}

	if len(products) == 0 {
		fmt.Println("No products found")
		return nil
	}

	fmt.Printf("Found %d products:\n\n", len(products))
	for _, p := range products {
		fmt.Printf("  %s\n", cli.RecordLine(p))
	}

	return nil
}
