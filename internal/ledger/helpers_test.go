package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/repository"
	"github.com/walletkit/walletkit/internal/store"
)

type fixture struct {
	svc  *Service
	repo *repository.Repository
	mem  *store.Memory
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureFrom(t, store.NewMemory())
}

func (f *fixture) account(t *testing.T, name, balance string) model.Account {
	t.Helper()
	a, err := f.svc.AddAccount(context.Background(), AccountInput{
		Name:    name,
		Type:    model.AccountTypeBank,
		Balance: dec(balance),
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) txn(t *testing.T, accountID string, typ model.TransactionType, amount string) model.Transaction {
	t.Helper()
	txn, err := f.svc.AddTransaction(context.Background(), TransactionInput{
		AccountID:   accountID,
		Amount:      dec(amount),
		Type:        typ,
		CategoryID:  "food",
		Description: "test",
	})
	require.NoError(t, err)
	return txn
}

func (f *fixture) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	a, ok := f.repo.Account(accountID)
	require.True(t, ok, "account %s missing", accountID)
	return a.Balance
}

// assertBalanced checks every account against opening + sum of deltas.
func assertBalanced(t *testing.T, repo *repository.Repository, opening map[string]decimal.Decimal) {
	t.Helper()
	for _, a := range repo.Accounts() {
		want := opening[a.ID]
		for _, txn := range repo.Transactions() {
			if txn.AccountID == a.ID {
				want = want.Add(txn.Delta())
			}
		}
		assert.True(t, want.Equal(a.Balance), "account %s: balance %s, want %s", a.Name, a.Balance, want)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "got %s, want %s", got, want)
}

func newFixtureFrom(t *testing.T, mem *store.Memory) *fixture {
	t.Helper()
	f := &fixture{mem: mem, now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	f.repo = repository.New(mem)
	require.NoError(t, f.repo.Load(context.Background()))
	f.svc = NewService(f.repo, WithClock(func() time.Time { return f.now }))
	return f
}
