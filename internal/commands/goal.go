package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/ledger"
	"github.com/walletkit/walletkit/internal/model"
)

func newGoalCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage savings goals",
	}
	cmd.AddCommand(
		newGoalAddCommand(g),
		newGoalListCommand(g),
		newGoalDeleteCommand(g),
	)
	return cmd
}

func goalID(s model.SavingsGoal) string { return s.ID }

func newGoalAddCommand(g *globalFlags) *cobra.Command {
	var name, target, current, currency, deadline string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a savings goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ledger.SavingsGoalInput{Name: name}
			var err error
			if in.TargetAmount, err = parseAmount("target", target); err != nil {
				return err
			}
			if in.CurrentAmount, err = parseAmount("current", current); err != nil {
				return err
			}
			if in.Currency, err = parseCurrency("currency", currency); err != nil {
				return err
			}
			if in.Deadline, err = parseOptionalDate("deadline", deadline); err != nil {
				return err
			}
			return withApp(cmd, g, func(a *app) error {
				goal, err := a.ledger.AddSavingsGoal(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added goal %s (%s)\n", goal.Name, shortID(goal.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "goal name (required)")
	cmd.Flags().StringVar(&target, "target", "", "target amount (required)")
	cmd.Flags().StringVar(&current, "current", "0", "amount saved so far")
	cmd.Flags().StringVar(&currency, "currency", "", "currency (default from settings)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newGoalListCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				hide := a.repo.Settings().HideBalances
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tSAVED\tTARGET\tCURRENCY\tDEADLINE")
				for _, goal := range a.repo.SavingsGoals() {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						shortID(goal.ID), goal.Name, money(goal.CurrentAmount, hide), money(goal.TargetAmount, hide),
						goal.Currency, optionalDate(goal.Deadline))
				}
				return tw.Flush()
			})
		},
	}
}

func newGoalDeleteCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				full, err := resolveID("goal", args[0], a.repo.SavingsGoals(), goalID)
				if err != nil {
					return err
				}
				if err := a.ledger.DeleteSavingsGoal(cmd.Context(), full); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s\n", shortID(full))
				return nil
			})
		},
	}
}
