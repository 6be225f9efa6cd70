package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is informational; budgets never roll their start date.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is a known budget period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// Start returns local midnight at the beginning of the period containing now:
// the most recent Sunday, the 1st of the month or January 1. Unknown periods
// are treated as monthly.
func (p BudgetPeriod) Start(now time.Time) time.Time {
	y, m, d := now.Date()
	switch p {
	case BudgetPeriodWeekly:
		return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	case BudgetPeriodYearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	}
}

// Budget is a spending ceiling for one category over a date window.
// A nil EndDate means the window is open until now.
type Budget struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    *time.Time      `json:"endDate,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// SavingsGoal is a plain record; nothing derives figures from it.
type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Currency      Currency        `json:"currency"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
