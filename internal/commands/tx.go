package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/ledger"
	"github.com/walletkit/walletkit/internal/model"
)

func newTxCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Manage transactions",
	}
	cmd.AddCommand(
		newTxAddCommand(g),
		newTxListCommand(g),
		newTxEditCommand(g),
		newTxDeleteCommand(g),
	)
	return cmd
}

func txnID(t model.Transaction) string { return t.ID }

type txFlags struct {
	account, amount, typ, category, description, date, location, receipt, recurring string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.account, "account", "", "account id")
	cmd.Flags().StringVar(&f.amount, "amount", "", "positive amount")
	cmd.Flags().StringVar(&f.typ, "type", "", "income, expense or transfer")
	cmd.Flags().StringVar(&f.category, "category", "", "category id")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.location, "location", "", "location")
	cmd.Flags().StringVar(&f.receipt, "receipt", "", "receipt image reference")
	cmd.Flags().StringVar(&f.recurring, "recurring", "", "daily, weekly, monthly or yearly")
}

func newTxAddCommand(g *globalFlags) *cobra.Command {
	f := &txFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", f.amount)
			if err != nil {
				return err
			}
			in := ledger.TransactionInput{
				Amount:             amount,
				Type:               model.TransactionType(f.typ),
				CategoryID:         f.category,
				Description:        f.description,
				Location:           f.location,
				ReceiptImage:       f.receipt,
				IsRecurring:        f.recurring != "",
				RecurringFrequency: model.Frequency(f.recurring),
			}
			if f.date != "" {
				if in.Date, err = parseDate("date", f.date); err != nil {
					return err
				}
			}
			return withApp(cmd, g, func(a *app) error {
				if in.AccountID, err = resolveID("account", f.account, a.repo.Accounts(), accountID); err != nil {
					return err
				}
				txn, err := a.ledger.AddTransaction(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s (%s)\n", txn.Type, txn.Amount.StringFixed(2), shortID(txn.ID))
				return nil
			})
		},
	}
	f.register(cmd)
	for _, name := range []string{"account", "amount", "type", "category", "description"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newTxListCommand(g *globalFlags) *cobra.Command {
	var account, typ string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if typ == "all" {
				typ = ""
			}
			if typ != "" && !model.TransactionType(typ).Valid() {
				return fmt.Errorf("--type: expected all, income, expense or transfer, got %q", typ)
			}
			return withApp(cmd, g, func(a *app) error {
				var filter string
				if account != "" {
					var err error
					if filter, err = resolveID("account", account, a.repo.Accounts(), accountID); err != nil {
						return err
					}
				}
				txns := a.repo.Transactions()
				sort.SliceStable(txns, func(i, j int) bool { return txns[i].Date.After(txns[j].Date) })

				hide := a.repo.Settings().HideBalances
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tACCOUNT\tCATEGORY\tDESCRIPTION")
				shown := 0
				for _, t := range txns {
					if filter != "" && t.AccountID != filter {
						continue
					}
					if typ != "" && t.Type != model.TransactionType(typ) {
						continue
					}
					if limit > 0 && shown == limit {
						break
					}
					shown++
					acctName := shortID(t.AccountID)
					if acct, ok := a.repo.Account(t.AccountID); ok {
						acctName = acct.Name
					}
					catName := t.CategoryID
					if c, ok := a.repo.Category(t.CategoryID); ok {
						catName = c.Name
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						shortID(t.ID), t.Date.Format(dateFormat), t.Type, money(t.Amount, hide), acctName, catName, t.Description)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "only this account")
	cmd.Flags().StringVar(&typ, "type", "all", "all, income, expense or transfer")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 for all)")
	return cmd
}

func newTxEditCommand(g *globalFlags) *cobra.Command {
	f := &txFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction; balances follow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				full, err := resolveID("transaction", args[0], a.repo.Transactions(), txnID)
				if err != nil {
					return err
				}
				t, _ := a.repo.Transaction(full)
				flags := cmd.Flags()
				if flags.Changed("account") {
					if t.AccountID, err = resolveID("account", f.account, a.repo.Accounts(), accountID); err != nil {
						return err
					}
				}
				if flags.Changed("amount") {
					if t.Amount, err = parseAmount("amount", f.amount); err != nil {
						return err
					}
				}
				if flags.Changed("date") {
					if t.Date, err = parseDate("date", f.date); err != nil {
						return err
					}
				}
				if flags.Changed("type") {
					t.Type = model.TransactionType(f.typ)
				}
				if flags.Changed("category") {
					t.CategoryID = f.category
				}
				if flags.Changed("description") {
					t.Description = f.description
				}
				if flags.Changed("location") {
					t.Location = f.location
				}
				if flags.Changed("receipt") {
					t.ReceiptImage = f.receipt
				}
				if flags.Changed("recurring") {
					t.IsRecurring = f.recurring != ""
					t.RecurringFrequency = model.Frequency(f.recurring)
				}
				if _, err := a.ledger.UpdateTransaction(cmd.Context(), t); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %s\n", shortID(full))
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newTxDeleteCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction and revert its balance effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				full, err := resolveID("transaction", args[0], a.repo.Transactions(), txnID)
				if err != nil {
					return err
				}
				if err := a.ledger.DeleteTransaction(cmd.Context(), full); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s\n", shortID(full))
				return nil
			})
		},
	}
}
