package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "caja",
		Short:   "Sales, expenses and fiado tracking for a small shop",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("dir", "d", ".", "caja data directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newSaleCommand(),
		newExpenseCommand(),
		newCollectCommand(),
		newCustomerCommand(),
		newCategoryCommand(),
		newProductCommand(),
		newReportCommand(),
		newStatusCommand(),
	)

	return rootCmd
}
