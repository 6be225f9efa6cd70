package repository

import (
	"time"

	"github.com/walletkit/walletkit/internal/model"
)

// Accounts returns a copy of all accounts.
func (r *Repository) Accounts() []model.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.accounts)
}

// Transactions returns a copy of all transactions.
func (r *Repository) Transactions() []model.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.transactions)
}

// Budgets returns a copy of all budgets.
func (r *Repository) Budgets() []model.Budget {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneBudgets(r.budgets)
}

// SavingsGoals returns a copy of all savings goals.
func (r *Repository) SavingsGoals() []model.SavingsGoal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneGoals(r.savingsGoals)
}

// Categories returns a copy of all categories.
func (r *Repository) Categories() []model.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.categories)
}

// Settings returns the current settings.
func (r *Repository) Settings() model.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// Account returns the account with id.
func (r *Repository) Account(id string) (model.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.accounts, func(a model.Account) bool { return a.ID == id })
}

// Transaction returns the transaction with id.
func (r *Repository) Transaction(id string) (model.Transaction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.transactions, func(t model.Transaction) bool { return t.ID == id })
}

// Budget returns the budget with id.
func (r *Repository) Budget(id string) (model.Budget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := find(r.budgets, func(b model.Budget) bool { return b.ID == id })
	if ok {
		b.EndDate = cloneTime(b.EndDate)
	}
	return b, ok
}

// SavingsGoal returns the savings goal with id.
func (r *Repository) SavingsGoal(id string) (model.SavingsGoal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := find(r.savingsGoals, func(g model.SavingsGoal) bool { return g.ID == id })
	if ok {
		g.Deadline = cloneTime(g.Deadline)
	}
	return g, ok
}

// Category returns the category with id.
func (r *Repository) Category(id string) (model.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return find(r.categories, func(c model.Category) bool { return c.ID == id })
}

func find[T any](s []T, match func(T) bool) (T, bool) {
	for _, v := range s {
		if match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneBudgets(s []model.Budget) []model.Budget {
	out := clone(s)
	for i := range out {
		out[i].EndDate = cloneTime(out[i].EndDate)
	}
	return out
}

func cloneGoals(s []model.SavingsGoal) []model.SavingsGoal {
	out := clone(s)
	for i := range out {
		out[i].Deadline = cloneTime(out[i].Deadline)
	}
	return out
}
