package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/ledger"
	"github.com/walletkit/walletkit/internal/model"
)

func newAccountCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(
		newAccountAddCommand(g),
		newAccountListCommand(g),
		newAccountEditCommand(g),
		newAccountDeleteCommand(g),
	)
	return cmd
}

func accountID(a model.Account) string { return a.ID }

func newAccountAddCommand(g *globalFlags) *cobra.Command {
	var in ledger.AccountInput
	var typ, balance, currency string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			in.Type = model.AccountType(typ)
			if in.Balance, err = parseAmount("balance", balance); err != nil {
				return err
			}
			if in.Currency, err = parseCurrency("currency", currency); err != nil {
				return err
			}
			return withApp(cmd, g, func(a *app) error {
				acct, err := a.ledger.AddAccount(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added account %s (%s)\n", acct.Name, shortID(acct.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&typ, "type", string(model.AccountTypeBank), "cash, credit, bank or digital")
	cmd.Flags().StringVar(&balance, "balance", "0", "opening balance")
	cmd.Flags().StringVar(&currency, "currency", "", "currency (default from settings)")
	cmd.Flags().StringVar(&in.Color, "color", "", "display color")
	cmd.Flags().StringVar(&in.Icon, "icon", "", "display icon")
	return cmd
}

func newAccountListCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				hide := a.repo.Settings().HideBalances
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCURRENCY\tBALANCE")
				for _, acct := range a.repo.Accounts() {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						shortID(acct.ID), acct.Name, acct.Type, acct.Currency, money(acct.Balance, hide))
				}
				return tw.Flush()
			})
		},
	}
}

func newAccountEditCommand(g *globalFlags) *cobra.Command {
	var name, typ, currency, color, icon string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an account's name, type, currency or appearance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				full, err := resolveID("account", args[0], a.repo.Accounts(), accountID)
				if err != nil {
					return err
				}
				acct, _ := a.repo.Account(full)
				flags := cmd.Flags()
				if flags.Changed("name") {
					acct.Name = name
				}
				if flags.Changed("type") {
					acct.Type = model.AccountType(typ)
				}
				if flags.Changed("currency") {
					if acct.Currency, err = parseCurrency("currency", currency); err != nil {
						return err
					}
				}
				if flags.Changed("color") {
					acct.Color = color
				}
				if flags.Changed("icon") {
					acct.Icon = icon
				}
				if _, err := a.ledger.UpdateAccount(cmd.Context(), acct); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated account %s\n", shortID(full))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name")
	cmd.Flags().StringVar(&typ, "type", "", "cash, credit, bank or digital")
	cmd.Flags().StringVar(&currency, "currency", "", "currency")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().StringVar(&icon, "icon", "", "display icon")
	return cmd
}

func newAccountDeleteCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and all of its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				full, err := resolveID("account", args[0], a.repo.Accounts(), accountID)
				if err != nil {
					return err
				}
				if err := a.ledger.DeleteAccount(cmd.Context(), full); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", shortID(full))
				return nil
			})
		},
	}
}
