package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/ledger"
)

func newSettingsCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change wallet settings",
	}
	cmd.AddCommand(newSettingsShowCommand(g), newSettingsSetCommand(g))
	return cmd
}

func newSettingsShowCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				s := a.repo.Settings()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Default currency: %s\n", s.DefaultCurrency)
				fmt.Fprintf(out, "PIN lock:         %s\n", onOff(s.PinEnabled))
				fmt.Fprintf(out, "Hide balances:    %s\n", onOff(s.HideBalances))
				return nil
			})
		},
	}
}

func newSettingsSetCommand(g *globalFlags) *cobra.Command {
	var currency, newPIN string
	var pinEnabled, hideBalances bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the given flags are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var u ledger.SettingsUpdate
			flags := cmd.Flags()
			if flags.Changed("currency") {
				c, err := parseCurrency("currency", currency)
				if err != nil {
					return err
				}
				u.DefaultCurrency = &c
			}
			if flags.Changed("pin-enabled") {
				u.PinEnabled = &pinEnabled
			}
			if flags.Changed("new-pin") {
				u.PIN = &newPIN
			}
			if flags.Changed("hide-balances") {
				u.HideBalances = &hideBalances
			}
			return withApp(cmd, g, func(a *app) error {
				if _, err := a.ledger.UpdateSettings(cmd.Context(), u); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings updated")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "default currency")
	cmd.Flags().BoolVar(&pinEnabled, "pin-enabled", false, "lock the wallet with a PIN")
	cmd.Flags().StringVar(&newPIN, "new-pin", "", "new 4-6 digit PIN")
	cmd.Flags().BoolVar(&hideBalances, "hide-balances", false, "mask amounts in output")
	return cmd
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
