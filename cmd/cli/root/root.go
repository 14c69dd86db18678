package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "loanctl",
	Short:         "Loan eligibility CLI",
	Long:          "Command line interface for registering, logging in and checking loan eligibility against the loan app.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns the RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
