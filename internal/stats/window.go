package stats

import (
	"time"

	"github.com/walletkit/walletkit/internal/model"
)

// monthWindow returns the first and last instants of now's calendar month.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := model.BudgetPeriodMonthly.Start(now)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func periodStart(now time.Time, p Period) time.Time {
	switch p {
	case PeriodWeek:
		return model.BudgetPeriodWeekly.Start(now)
	case PeriodYear:
		return model.BudgetPeriodYearly.Start(now)
	default:
		return model.BudgetPeriodMonthly.Start(now)
	}
}
