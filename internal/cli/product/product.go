// Package product implements the "tcm product" commands
package product

import (
	"github.com/spf13/cobra"
)

// ProductCmd returns the product parent command
func ProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())

	return cmd
}
