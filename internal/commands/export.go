package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/export"
)

func newExportCommand(g *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export <accounts|transactions>",
		Short:     "Export a collection as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"accounts", "transactions"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				var w io.Writer = cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("creating %s: %w", output, err)
					}
					defer f.Close()
					w = f
				}
				switch args[0] {
				case "accounts":
					return export.WriteAccounts(w, a.repo.Accounts())
				case "transactions":
					names := export.NamesFrom(a.repo.Accounts(), a.repo.Categories())
					return export.WriteTransactions(w, a.repo.Transactions(), names)
				default:
					return fmt.Errorf("unknown collection %q (want accounts or transactions)", args[0])
				}
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
