// Package testcase implements the "tcm case" commands
package testcase

import (
	"github.com/spf13/cobra"
)

// CaseCmd returns the case parent command
func CaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Inspect test cases",
	}

	cmd.AddCommand(ShowCmd())

	return cmd
}
