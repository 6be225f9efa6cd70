package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/stats"
)

func newStatsCommand(g *globalFlags) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show balances, this month's totals and spending by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(a *app) error {
				hide := a.repo.Settings().HideBalances
				s := a.stats.Summary()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total balance:    %s\n", money(s.TotalBalance, hide))
				fmt.Fprintf(out, "Monthly income:   %s\n", money(s.MonthlyIncome, hide))
				fmt.Fprintf(out, "Monthly expenses: %s\n", money(s.MonthlyExpenses, hide))
				fmt.Fprintf(out, "Net:              %s\n", money(s.Net, hide))

				fmt.Fprintf(out, "\nExpenses by category (this %s):\n", period)
				tw := newTable(out)
				for _, c := range a.repo.Categories() {
					if c.Type != model.CategoryTypeExpense {
						continue
					}
					spent := a.stats.CategoryExpenses(c.ID, stats.Period(period))
					if spent.IsZero() {
						continue
					}
					fmt.Fprintf(tw, "  %s\t%s\n", c.Name, money(spent, hide))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&period, "period", string(stats.PeriodMonth), "week, month or year")
	return cmd
}
