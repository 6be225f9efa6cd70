// Package stats derives dashboard figures from the wallet collections. Every
// figure is recomputed from the current data on each call.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletkit/walletkit/internal/model"
)

// Source is the read side of the repository.
type Source interface {
	Accounts() []model.Account
	Transactions() []model.Transaction
	Budget(id string) (model.Budget, bool)
}

// Period selects the start of a CategoryExpenses window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var hundred = decimal.NewFromInt(100)

// Progress is a budget's spend against its ceiling. Percentage is capped at 100.
type Progress struct {
	Spent      decimal.Decimal `json:"spent"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Summary holds the headline figures for the current month.
type Summary struct {
	TotalBalance    decimal.Decimal `json:"totalBalance"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	Net             decimal.Decimal `json:"net"`
}

// Calculator computes aggregates over a Source.
type Calculator struct {
	src Source
	now func() time.Time
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock overrides the time source. Windows are computed in the location
// of the returned time.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) { c.now = now }
}

// NewCalculator returns a Calculator reading from src.
func NewCalculator(src Source, opts ...Option) *Calculator {
	c := &Calculator{src: src, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TotalBalance sums every account balance. Currencies are not converted.
func (c *Calculator) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range c.src.Accounts() {
		total = total.Add(a.Balance)
	}
	return total
}

// MonthlyIncome sums income dated within the current calendar month.
func (c *Calculator) MonthlyIncome() decimal.Decimal {
	start, end := monthWindow(c.now())
	return c.sum(model.TransactionTypeIncome, "", start, &end)
}

// MonthlyExpenses sums expenses dated within the current calendar month.
// Transfers are not expenses.
func (c *Calculator) MonthlyExpenses() decimal.Decimal {
	start, end := monthWindow(c.now())
	return c.sum(model.TransactionTypeExpense, "", start, &end)
}

// CategoryExpenses sums expenses in a category dated on or after the start of
// the current week, month or year. An unrecognized period means month.
func (c *Calculator) CategoryExpenses(categoryID string, p Period) decimal.Decimal {
	return c.sum(model.TransactionTypeExpense, categoryID, periodStart(c.now(), p), nil)
}

// BudgetProgress reports spend against a budget over its window. The second
// result is false, with a zero Progress, when the budget does not exist.
func (c *Calculator) BudgetProgress(budgetID string) (Progress, bool) {
	b, ok := c.src.Budget(budgetID)
	if !ok {
		return Progress{Spent: decimal.Zero, Total: decimal.Zero, Percentage: decimal.Zero}, false
	}
	end := c.now()
	if b.EndDate != nil {
		end = *b.EndDate
	}
	spent := c.sum(model.TransactionTypeExpense, b.CategoryID, b.StartDate, &end)

	pct := decimal.Zero
	if b.Amount.IsPositive() {
		pct = decimal.Min(spent.Div(b.Amount).Mul(hundred), hundred)
	}
	return Progress{Spent: spent, Total: b.Amount, Percentage: pct}, true
}

// Summary returns the dashboard headline figures.
func (c *Calculator) Summary() Summary {
	income := c.MonthlyIncome()
	expenses := c.MonthlyExpenses()
	return Summary{
		TotalBalance:    c.TotalBalance(),
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		Net:             income.Sub(expenses),
	}
}

// sum adds the amounts of transactions of type typ dated in [start, end].
// An empty categoryID matches any category and a nil end is unbounded.
func (c *Calculator) sum(typ model.TransactionType, categoryID string, start time.Time, end *time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range c.src.Transactions() {
		if t.Type != typ || (categoryID != "" && t.CategoryID != categoryID) {
			continue
		}
		if t.Date.Before(start) || (end != nil && t.Date.After(*end)) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}
