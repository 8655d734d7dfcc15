// Package cycle implements the "tcm cycle" commands
package cycle

import (
	"github.com/spf13/cobra"
)

// CycleCmd returns the cycle parent command
func CycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Inspect test cycles",
	}

	cmd.AddCommand(ListCmd())

	return cmd
}
