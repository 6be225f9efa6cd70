package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/store"
)

func loaded(t *testing.T, s store.Store) *Repository {
	t.Helper()
	r := New(s)
	require.NoError(t, r.Load(context.Background()))
	return r
}

func TestLoad_EmptyStoreDefaults(t *testing.T) {
	mem := store.NewMemory()
	r := loaded(t, mem)

	assert.Empty(t, r.Accounts())
	assert.NotNil(t, r.Accounts())
	assert.Empty(t, r.Transactions())
	assert.Empty(t, r.Budgets())
	assert.Empty(t, r.SavingsGoals())
	assert.Equal(t, model.DefaultSettings(), r.Settings())

	cats := r.Categories()
	require.Len(t, cats, len(DefaultCategories()))
	for _, c := range cats {
		assert.True(t, c.IsDefault, "seeded category %s should be default", c.ID)
	}

	// Seeded categories are persisted once.
	raw, ok, err := mem.Get(context.Background(), store.KeyCategories)
	require.NoError(t, err)
	require.True(t, ok)
	var stored []model.Category
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored, len(cats))
}

func TestLoad_SeedsOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	custom := []model.Category{{ID: "pets", Name: "Pets", Type: model.CategoryTypeExpense}}
	data, err := json.Marshal(custom)
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, store.KeyCategories, data))

	r := loaded(t, mem)
	assert.Equal(t, custom, r.Categories())
	assert.Equal(t, 1, mem.SetCalls(), "no reseed when categories exist")

	require.NoError(t, mem.Set(ctx, store.KeyCategories, []byte(`[]`)))
	r = loaded(t, mem)
	assert.Len(t, r.Categories(), len(DefaultCategories()))
}

func TestLoad_ExistingData(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, store.KeyAccounts, []byte(`[{"id":"a1","name":"Cash","type":"cash","balance":"100.50","currency":"EUR"}]`)))
	require.NoError(t, mem.Set(ctx, store.KeySettings, []byte(`{"pinEnabled":false,"hideBalances":true}`)))

	r := loaded(t, mem)
	acct, ok := r.Account("a1")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("100.5").Equal(acct.Balance))
	assert.Equal(t, model.Currency("EUR"), acct.Currency)

	s := r.Settings()
	assert.True(t, s.HideBalances)
	assert.Equal(t, model.USD, s.DefaultCurrency, "missing currency falls back to default")
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	mem := store.NewMemory()
	boom := errors.New("io error")
	mem.FailGet(store.KeyBudgets, boom)
	err := New(mem).Load(ctx)
	require.ErrorIs(t, err, boom)

	mem = store.NewMemory()
	require.NoError(t, mem.Set(ctx, store.KeyTransactions, []byte(`{not json`)))
	err = New(mem).Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), store.KeyTransactions)
}

func TestReplace_NotLoaded(t *testing.T) {
	r := New(store.NewMemory())
	err := r.Replace(context.Background(), AccountsChange(nil))
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestReplace_UpdatesViewAndStore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	r := loaded(t, mem)

	accts := []model.Account{{ID: "a1", Name: "Bank", Balance: decimal.NewFromInt(10)}}
	require.NoError(t, r.Replace(ctx, AccountsChange(accts)))

	// Mutating the caller's slice must not leak into the repository.
	accts[0].Name = "changed"
	got, ok := r.Account("a1")
	require.True(t, ok)
	assert.Equal(t, "Bank", got.Name)

	reloaded := loaded(t, mem)
	assert.Len(t, reloaded.Accounts(), 1)
}

func TestReplace_NilCollectionStoredAsEmptyArray(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	r := loaded(t, mem)

	require.NoError(t, r.Replace(ctx, TransactionsChange(nil)))
	raw, _, err := mem.Get(ctx, store.KeyTransactions)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestReplace_RollsBackEarlierWrites(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	r := loaded(t, mem)

	before := []model.Transaction{{ID: "t0", Amount: decimal.NewFromInt(1)}}
	require.NoError(t, r.Replace(ctx, TransactionsChange(before)))

	boom := errors.New("quota exceeded")
	mem.FailSet(store.KeyAccounts, boom)

	err := r.Replace(ctx,
		TransactionsChange(append(before, model.Transaction{ID: "t1"})),
		AccountsChange([]model.Account{{ID: "a1"}}),
	)
	require.ErrorIs(t, err, boom)
	var pwe *PartialWriteError
	assert.False(t, errors.As(err, &pwe), "rollback succeeded, so no partial write")

	assert.Len(t, r.Transactions(), 1, "in-memory view unchanged")
	assert.Empty(t, r.Accounts())

	mem.FailSet(store.KeyAccounts, nil)
	reloaded := loaded(t, mem)
	assert.Len(t, reloaded.Transactions(), 1, "stored transactions restored")
}

// failAfter lets the first n Set calls for a key succeed.
type failAfter struct {
	*store.Memory
	key   string
	n     int
	calls int
	err   error
}

func (f *failAfter) Set(ctx context.Context, key string, value []byte) error {
	if key == f.key {
		f.calls++
		if f.calls > f.n {
			return f.err
		}
	}
	return f.Memory.Set(ctx, key, value)
}

func TestReplace_PartialWriteError(t *testing.T) {
	ctx := context.Background()
	base := store.NewMemory()
	boom := errors.New("disk gone")
	// The first transactions write (the commit) succeeds; the restore fails.
	fs := &failAfter{Memory: base, key: store.KeyTransactions, n: 1, err: boom}
	r := New(fs)
	require.NoError(t, r.Load(ctx))

	base.FailSet(store.KeyAccounts, errors.New("accounts write failed"))

	err := r.Replace(ctx,
		TransactionsChange([]model.Transaction{{ID: "t1"}}),
		AccountsChange([]model.Account{{ID: "a1"}}),
	)
	var pwe *PartialWriteError
	require.ErrorAs(t, err, &pwe)
	assert.Equal(t, []string{store.KeyTransactions}, pwe.Keys)
	assert.Contains(t, pwe.Error(), "accounts write failed")
	assert.Empty(t, r.Transactions(), "in-memory view stays at last commit")
}

func TestAccessors_ReturnCopies(t *testing.T) {
	ctx := context.Background()
	r := loaded(t, store.NewMemory())

	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Replace(ctx, BudgetsChange([]model.Budget{{ID: "b1", EndDate: &end}})))
	end = end.AddDate(1, 0, 0)

	b, ok := r.Budget("b1")
	require.True(t, ok)
	assert.Equal(t, 2026, b.EndDate.Year())

	*b.EndDate = b.EndDate.AddDate(5, 0, 0)
	again, _ := r.Budget("b1")
	assert.Equal(t, 2026, again.EndDate.Year())

	budgets := r.Budgets()
	budgets[0].Title = "mutated"
	again, _ = r.Budget("b1")
	assert.Empty(t, again.Title)

	_, ok = r.Budget("missing")
	assert.False(t, ok)
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	r := loaded(t, store.NewMemory())

	deadline := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Replace(ctx,
		TransactionsChange([]model.Transaction{{ID: "t1", Description: "coffee"}}),
		SavingsGoalsChange([]model.SavingsGoal{{ID: "g1", Name: "Bike", Deadline: &deadline}}),
		SettingsChange(model.Settings{DefaultCurrency: "EUR"}),
	))

	txn, ok := r.Transaction("t1")
	require.True(t, ok)
	assert.Equal(t, "coffee", txn.Description)

	g, ok := r.SavingsGoal("g1")
	require.True(t, ok)
	assert.Equal(t, deadline, *g.Deadline)

	c, ok := r.Category("food")
	require.True(t, ok)
	assert.Equal(t, model.CategoryTypeExpense, c.Type)

	assert.Equal(t, model.Currency("EUR"), r.Settings().DefaultCurrency)
}

func TestReplace_SQLiteBatch(t *testing.T) {
	ctx := context.Background()
	db, err := store.NewSQLite(ctx, t.TempDir()+"/wallet.db")
	require.NoError(t, err)
	defer db.Close()

	r := loaded(t, db)
	require.NoError(t, r.Replace(ctx,
		AccountsChange([]model.Account{{ID: "a1", Balance: decimal.NewFromInt(5)}}),
		TransactionsChange([]model.Transaction{{ID: "t1"}}),
	))

	reloaded := loaded(t, db)
	assert.Len(t, reloaded.Accounts(), 1)
	assert.Len(t, reloaded.Transactions(), 1)
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	ids := make(map[string]bool)
	var income, expense int
	for _, c := range cats {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
		assert.NotEmpty(t, c.Name)
		assert.True(t, c.Type.Valid())
		if c.Type == model.CategoryTypeIncome {
			income++
		} else {
			expense++
		}
	}
	assert.Positive(t, income)
	assert.Positive(t, expense)
}
