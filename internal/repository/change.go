package repository

import (
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/store"
)

// Change is the full new value of one collection, passed to Replace.
type Change struct {
	key   string
	value any
	apply func(r *Repository)
}

// AccountsChange replaces the accounts collection.
func AccountsChange(v []model.Account) Change {
	v = clone(v)
	return Change{key: store.KeyAccounts, value: v, apply: func(r *Repository) { r.accounts = v }}
}

// TransactionsChange replaces the transactions collection.
func TransactionsChange(v []model.Transaction) Change {
	v = clone(v)
	return Change{key: store.KeyTransactions, value: v, apply: func(r *Repository) { r.transactions = v }}
}

// BudgetsChange replaces the budgets collection.
func BudgetsChange(v []model.Budget) Change {
	v = cloneBudgets(v)
	return Change{key: store.KeyBudgets, value: v, apply: func(r *Repository) { r.budgets = v }}
}

// SavingsGoalsChange replaces the savings goals collection.
func SavingsGoalsChange(v []model.SavingsGoal) Change {
	v = cloneGoals(v)
	return Change{key: store.KeySavingsGoals, value: v, apply: func(r *Repository) { r.savingsGoals = v }}
}

// CategoriesChange replaces the categories collection.
func CategoriesChange(v []model.Category) Change {
	v = clone(v)
	return Change{key: store.KeyCategories, value: v, apply: func(r *Repository) { r.categories = v }}
}

// SettingsChange replaces the settings record.
func SettingsChange(v model.Settings) Change {
	return Change{key: store.KeySettings, value: v, apply: func(r *Repository) { r.settings = v }}
}
