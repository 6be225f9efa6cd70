package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/importer"
)

func newImportCommand(g *globalFlags) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "import <format> <file>",
		Short: "Import a bank statement CSV into an account",
		Long:  "Import a bank statement CSV into an account.\n\nFormats: " + strings.Join(importer.DefaultRegistry().Formats(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				n, skipped, err := importFile(cmd, a, args[0], args[1], account)
				if err != nil {
					return err
				}
				reportImport(cmd, n, skipped, args[1])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "target account id (required)")
	_ = cmd.MarkFlagRequired("account")

	cmd.AddCommand(newImportInboxCommand(g))
	return cmd
}

func newImportInboxCommand(g *globalFlags) *cobra.Command {
	var account, format string

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Import every CSV waiting in <wallet>/import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				files, err := importer.Scan(a.root)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
					return nil
				}
				for _, f := range files {
					n, skipped, err := importFile(cmd, a, format, f.Path, account)
					if err != nil {
						return fmt.Errorf("%s: %w", f.Name, err)
					}
					if err := importer.MarkProcessed(a.root, f.Name); err != nil {
						return err
					}
					reportImport(cmd, n, skipped, f.Name)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "target account id (required)")
	cmd.Flags().StringVar(&format, "format", "chase", "statement format")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func reportImport(cmd *cobra.Command, n, skipped int, name string) {
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %s", n, name)
	if skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d already imported)", skipped)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

// importFile books the rows of one statement and returns how many were added
// and how many were skipped as already imported.
func importFile(cmd *cobra.Command, a *app, format, path, account string) (int, int, error) {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return 0, 0, fmt.Errorf("unknown import format %q", format)
	}
	acctID, err := resolveID("account", account, a.repo.Accounts(), accountID)
	if err != nil {
		return 0, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	fresh := importer.SkipBooked(rows, acctID, a.repo.Transactions())
	added, err := a.ledger.AddTransactions(cmd.Context(), importer.Inputs(fresh, importer.DefaultMapping(acctID)))
	if err != nil {
		return 0, 0, err
	}
	skipped := len(rows) - len(fresh)
	a.log.Info("statement imported", "file", path, "format", format, "transactions", len(added), "skipped", skipped)
	return len(added), skipped, nil
}
