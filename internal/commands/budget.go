package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/ledger"
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/stats"
)

func newBudgetCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budgets",
	}
	cmd.AddCommand(
		newBudgetAddCommand(g),
		newBudgetListCommand(g),
		newBudgetDeleteCommand(g),
		newBudgetProgressCommand(g),
	)
	return cmd
}

func budgetID(b model.Budget) string { return b.ID }

func newBudgetAddCommand(g *globalFlags) *cobra.Command {
	var title, category, amount, period, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a spending budget for a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ledger.BudgetInput{Title: title, CategoryID: category, Period: model.BudgetPeriod(period)}
			var err error
			if in.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			if start != "" {
				if in.StartDate, err = parseDate("start", start); err != nil {
					return err
				}
			}
			if in.EndDate, err = parseOptionalDate("end", end); err != nil {
				return err
			}
			if in.EndDate != nil {
				last := endOfDay(*in.EndDate)
				in.EndDate = &last
			}
			return withApp(cmd, g, func(a *app) error {
				b, err := a.ledger.AddBudget(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added budget %s (%s)\n", b.Title, shortID(b.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "budget title (required)")
	cmd.Flags().StringVar(&category, "category", "", "category id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "spending ceiling (required)")
	cmd.Flags().StringVar(&period, "period", string(model.BudgetPeriodMonthly), "weekly, monthly or yearly")
	cmd.Flags().StringVar(&start, "start", "", "window start YYYY-MM-DD (default start of the current period)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the window YYYY-MM-DD, inclusive (default open)")
	for _, name := range []string{"title", "category", "amount"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newBudgetListCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				hide := a.repo.Settings().HideBalances
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPERIOD\tSTART\tEND\tSPENT\tTOTAL\tUSED")
				for _, b := range a.repo.Budgets() {
					p, _ := a.stats.BudgetProgress(b.ID)
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s%%\n",
						shortID(b.ID), b.Title, b.CategoryID, b.Period, b.StartDate.Format(dateFormat), optionalDate(b.EndDate),
						money(p.Spent, hide), money(p.Total, hide), p.Percentage.StringFixed(1))
				}
				return tw.Flush()
			})
		},
	}
}

func newBudgetDeleteCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				full, err := resolveID("budget", args[0], a.repo.Budgets(), budgetID)
				if err != nil {
					return err
				}
				if err := a.ledger.DeleteBudget(cmd.Context(), full); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted budget %s\n", shortID(full))
				return nil
			})
		},
	}
}

func newBudgetProgressCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id>",
		Short: "Show spend against a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				full, err := resolveID("budget", args[0], a.repo.Budgets(), budgetID)
				if err != nil {
					return err
				}
				p, ok := a.stats.BudgetProgress(full)
				if !ok {
					return fmt.Errorf("no budget with id %q", args[0])
				}
				printProgress(cmd, p, a.repo.Settings().HideBalances)
				return nil
			})
		},
	}
}

func printProgress(cmd *cobra.Command, p stats.Progress, hide bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Spent:  %s\n", money(p.Spent, hide))
	fmt.Fprintf(out, "Total:  %s\n", money(p.Total, hide))
	fmt.Fprintf(out, "Used:   %s%%\n", p.Percentage.StringFixed(1))
}
