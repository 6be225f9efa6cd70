// Package ledger implements every operation that changes wallet data. It
// keeps each account's balance equal to its opening balance plus the signed
// sum of its transactions.
package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletkit/walletkit/internal/log"
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/repository"
)

var (
	// ErrNotFound is returned when updating a record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDefaultCategory is returned when deleting a seeded category.
	ErrDefaultCategory = errors.New("default categories cannot be deleted")
)

// Repository is the collection store the ledger reads and commits through.
type Repository interface {
	Accounts() []model.Account
	Transactions() []model.Transaction
	Budgets() []model.Budget
	SavingsGoals() []model.SavingsGoal
	Categories() []model.Category
	Settings() model.Settings
	Account(id string) (model.Account, bool)
	Transaction(id string) (model.Transaction, bool)
	Budget(id string) (model.Budget, bool)
	SavingsGoal(id string) (model.SavingsGoal, bool)
	Category(id string) (model.Category, bool)
	Replace(ctx context.Context, changes ...repository.Change) error
}

// Service provides the wallet's mutating operations. Each call is one
// read-modify-commit step; calls are serialized.
type Service struct {
	repo Repository
	now  func() time.Time
	log  *log.Logger
	mu   sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l.WithComponent("ledger") }
}

// NewService creates a ledger Service over a loaded repository.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, log: log.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// applyDelta adds delta to the balance of the account with id in accounts.
// It reports whether the account was found.
func applyDelta(accounts []model.Account, id string, delta decimal.Decimal, now time.Time) bool {
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		accounts[i].Balance = accounts[i].Balance.Add(delta)
		accounts[i].UpdatedAt = later(now, accounts[i].UpdatedAt)
		return true
	}
	return false
}

// later returns the later of two instants, so updatedAt never moves back.
func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func indexOf[T any](s []T, match func(T) bool) int {
	for i, v := range s {
		if match(v) {
			return i
		}
	}
	return -1
}
