package commands

import (
	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/buildinfo"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	repoDir string
	pin     string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:     "walletkit",
		Short:   "Personal wallet ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.repoDir, "repo", ".", "wallet directory")
	rootCmd.PersistentFlags().StringVar(&g.pin, "pin", "", "PIN for a locked wallet (or "+pinEnv+")")

	rootCmd.AddCommand(
		newInitCommand(g),
		newAccountCommand(g),
		newTxCommand(g),
		newBudgetCommand(g),
		newCategoryCommand(g),
		newGoalCommand(g),
		newSettingsCommand(g),
		newStatsCommand(g),
		newImportCommand(g),
		newExportCommand(g),
	)
	return rootCmd
}
