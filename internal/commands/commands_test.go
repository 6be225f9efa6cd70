package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletkit/walletkit/internal/config"
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/repository"
	"github.com/walletkit/walletkit/internal/store"
)

func runWallet(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--repo", dir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runWallet(t, dir, args...)
	require.NoError(t, err, "walletkit %v", args)
	return out
}

var idInParens = regexp.MustCompile(`\(([^)]+)\)`)

func createdID(t *testing.T, out string) string {
	t.Helper()
	m := idInParens.FindStringSubmatch(out)
	require.Len(t, m, 2, "no id in %q", out)
	return m[1]
}

func newWallet(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, append([]string{"init"}, args...)...)
	return dir
}

// loadRepo reads the wallet straight from its file store.
func loadRepo(t *testing.T, dir string) *repository.Repository {
	t.Helper()
	s, err := store.NewFile(filepath.Join(dir, "data"))
	require.NoError(t, err)
	repo := repository.New(s)
	require.NoError(t, repo.Load(context.Background()))
	return repo
}

func TestInit_CreatesWallet(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "init", "--currency", "eur")
	assert.Contains(t, out, "Initialized walletkit wallet")

	for _, d := range []string{"import", filepath.Join("import", "processed"), "data"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "EUR", cfg.Defaults.Currency)

	repo := loadRepo(t, dir)
	assert.Equal(t, model.Currency("EUR"), repo.Settings().DefaultCurrency)
	assert.Len(t, repo.Categories(), len(repository.DefaultCategories()))

	_, err = runWallet(t, dir, "init")
	assert.ErrorContains(t, err, "already exists")
}

func TestInit_Rejects(t *testing.T) {
	_, err := runWallet(t, t.TempDir(), "init", "--currency", "XYZ")
	assert.ErrorContains(t, err, "unsupported currency")

	_, err = runWallet(t, t.TempDir(), "init", "--backend", "memory")
	assert.Error(t, err)
}

func TestInit_SQLite(t *testing.T) {
	dir := newWallet(t, "--backend", "sqlite")
	_, err := os.Stat(filepath.Join(dir, "wallet.db"))
	require.NoError(t, err)

	out := mustRun(t, dir, "account", "add", "--name", "Cash", "--type", "cash", "--balance", "12.5")
	id := createdID(t, out)
	out = mustRun(t, dir, "account", "list")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "12.50")
}

func TestNoWallet(t *testing.T) {
	_, err := runWallet(t, t.TempDir(), "account", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run walletkit init")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAccountAndTransactionFlow(t *testing.T) {
	dir := newWallet(t)
	acct := createdID(t, mustRun(t, dir, "account", "add", "--name", "Checking", "--balance", "100"))

	income := createdID(t, mustRun(t, dir, "tx", "add", "--account", acct, "--type", "income",
		"--amount", "50", "--category", "salary", "--description", "Pay", "--date", "2025-03-01"))
	mustRun(t, dir, "tx", "add", "--account", acct, "--type", "expense",
		"--amount", "30", "--category", "food", "--description", "Groceries")

	out := mustRun(t, dir, "account", "list")
	assert.Contains(t, out, "120.00")

	out = mustRun(t, dir, "tx", "list", "--account", acct)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Food & Dining")
	assert.Contains(t, out, "2025-03-01")

	out = mustRun(t, dir, "tx", "list", "--type", "income")
	assert.Contains(t, out, "Pay")
	assert.NotContains(t, out, "Groceries")
	out = mustRun(t, dir, "tx", "list", "--type", "expense")
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "Pay")
	_, err := runWallet(t, dir, "tx", "list", "--type", "refund")
	assert.ErrorContains(t, err, "--type")

	mustRun(t, dir, "tx", "delete", income)
	repo := loadRepo(t, dir)
	accounts := repo.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "70.00", accounts[0].Balance.StringFixed(2))
	assert.Len(t, repo.Transactions(), 1)
}

func TestTransactionEdit(t *testing.T) {
	dir := newWallet(t)
	a := createdID(t, mustRun(t, dir, "account", "add", "--name", "A", "--balance", "120"))
	b := createdID(t, mustRun(t, dir, "account", "add", "--name", "B", "--balance", "100"))
	txn := createdID(t, mustRun(t, dir, "tx", "add", "--account", a, "--type", "expense",
		"--amount", "20", "--category", "food", "--description", "Lunch"))

	mustRun(t, dir, "tx", "edit", txn, "--account", b, "--amount", "50")

	balances := map[string]string{}
	for _, acct := range loadRepo(t, dir).Accounts() {
		balances[acct.Name] = acct.Balance.StringFixed(2)
	}
	assert.Equal(t, map[string]string{"A": "120.00", "B": "50.00"}, balances)
}

func TestTransactionAdd_Validation(t *testing.T) {
	dir := newWallet(t)
	acct := createdID(t, mustRun(t, dir, "account", "add", "--name", "A"))

	_, err := runWallet(t, dir, "tx", "add", "--account", acct, "--type", "expense",
		"--amount", "-5", "--category", "food", "--description", "x")
	assert.ErrorContains(t, err, "validation failed")

	_, err = runWallet(t, dir, "tx", "add", "--account", "nope", "--type", "expense",
		"--amount", "5", "--category", "food", "--description", "x")
	assert.ErrorContains(t, err, "no account")

	assert.Empty(t, loadRepo(t, dir).Transactions())
}

func TestAccountEditAndDelete(t *testing.T) {
	dir := newWallet(t)
	acct := createdID(t, mustRun(t, dir, "account", "add", "--name", "Old", "--balance", "10"))
	mustRun(t, dir, "tx", "add", "--account", acct, "--type", "expense",
		"--amount", "4", "--category", "food", "--description", "Snack")

	mustRun(t, dir, "account", "edit", acct, "--name", "New", "--type", "digital")
	accounts := loadRepo(t, dir).Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "New", accounts[0].Name)
	assert.Equal(t, model.AccountTypeDigital, accounts[0].Type)
	assert.Equal(t, "6.00", accounts[0].Balance.StringFixed(2))

	mustRun(t, dir, "account", "delete", acct)
	repo := loadRepo(t, dir)
	assert.Empty(t, repo.Accounts())
	assert.Empty(t, repo.Transactions())
}

func TestCategoryCommands(t *testing.T) {
	dir := newWallet(t)
	id := createdID(t, mustRun(t, dir, "category", "add", "--name", "Pets"))

	out := mustRun(t, dir, "category", "list", "--type", "expense")
	assert.Contains(t, out, "Pets")
	assert.NotContains(t, out, "Salary")

	_, err := runWallet(t, dir, "category", "delete", "food")
	assert.ErrorContains(t, err, "default category")

	mustRun(t, dir, "category", "delete", id)
	assert.Len(t, loadRepo(t, dir).Categories(), len(repository.DefaultCategories()))
}

func TestBudgetProgress(t *testing.T) {
	dir := newWallet(t)
	acct := createdID(t, mustRun(t, dir, "account", "add", "--name", "A", "--balance", "1000"))
	budget := createdID(t, mustRun(t, dir, "budget", "add", "--title", "Food", "--category", "food",
		"--amount", "200", "--start", "2025-01-01", "--end", "2025-01-31"))

	for _, tx := range [][]string{
		{"80", "2025-01-05"},
		{"90", "2025-01-20"},
		{"50", "2025-02-02"},
	} {
		mustRun(t, dir, "tx", "add", "--account", acct, "--type", "expense", "--amount", tx[0],
			"--category", "food", "--description", "Groceries", "--date", tx[1])
	}

	out := mustRun(t, dir, "budget", "progress", budget)
	assert.Contains(t, out, "Spent:  170.00")
	assert.Contains(t, out, "Used:   85.0%")

	out = mustRun(t, dir, "budget", "list")
	assert.Contains(t, out, "85.0%")
	assert.Contains(t, out, "2025-01-31")

	stored := loadRepo(t, dir).Budgets()
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].EndDate)
	lastInstant := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local).Add(-time.Nanosecond)
	assert.True(t, stored[0].EndDate.Equal(lastInstant), "end %s covers the whole last day", stored[0].EndDate)

	mustRun(t, dir, "budget", "delete", budget)
	assert.Empty(t, loadRepo(t, dir).Budgets())
}

func TestBudgetAdd_DefaultStartIsPeriodStart(t *testing.T) {
	dir := newWallet(t)
	mustRun(t, dir, "budget", "add", "--title", "Fun", "--category", "entertainment", "--amount", "50", "--period", "yearly")

	stored := loadRepo(t, dir).Budgets()
	require.Len(t, stored, 1)
	now := time.Now()
	assert.True(t, stored[0].StartDate.Equal(time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local)),
		"start %s", stored[0].StartDate)
}

func TestGoalCommands(t *testing.T) {
	dir := newWallet(t)
	id := createdID(t, mustRun(t, dir, "goal", "add", "--name", "Bike", "--target", "800", "--deadline", "2026-06-01"))

	out := mustRun(t, dir, "goal", "list")
	assert.Contains(t, out, "Bike")
	assert.Contains(t, out, "800.00")
	assert.Contains(t, out, "2026-06-01")

	mustRun(t, dir, "goal", "delete", id)
	assert.Empty(t, loadRepo(t, dir).SavingsGoals())
}

func TestSettingsAndPINLock(t *testing.T) {
	dir := newWallet(t)
	mustRun(t, dir, "account", "add", "--name", "A", "--balance", "42")

	mustRun(t, dir, "settings", "set", "--pin-enabled", "--new-pin", "2468", "--hide-balances")

	_, err := runWallet(t, dir, "account", "list")
	require.ErrorIs(t, err, errLocked)
	_, err = runWallet(t, dir, "--pin", "0000", "account", "list")
	require.ErrorIs(t, err, errLocked)

	out := mustRun(t, dir, "--pin", "2468", "account", "list")
	assert.Contains(t, out, "****")
	assert.NotContains(t, out, "42.00")

	t.Setenv(pinEnv, "2468")
	out = mustRun(t, dir, "settings", "show")
	assert.Contains(t, out, "PIN lock:         on")
	assert.Contains(t, out, "Hide balances:    on")

	mustRun(t, dir, "settings", "set", "--pin-enabled=false", "--hide-balances=false", "--currency", "gbp")
	t.Setenv(pinEnv, "")
	out = mustRun(t, dir, "settings", "show")
	assert.Contains(t, out, "Default currency: GBP")
	assert.Contains(t, out, "PIN lock:         off")
}

func TestStats(t *testing.T) {
	dir := newWallet(t)
	acct := createdID(t, mustRun(t, dir, "account", "add", "--name", "A", "--balance", "100"))
	mustRun(t, dir, "tx", "add", "--account", acct, "--type", "income", "--amount", "40",
		"--category", "salary", "--description", "Pay")
	mustRun(t, dir, "tx", "add", "--account", acct, "--type", "expense", "--amount", "15",
		"--category", "food", "--description", "Lunch")

	out := mustRun(t, dir, "stats")
	assert.Contains(t, out, "Total balance:    125.00")
	assert.Contains(t, out, "Monthly income:   40.00")
	assert.Contains(t, out, "Monthly expenses: 15.00")
	assert.Contains(t, out, "Net:              25.00")
	assert.Contains(t, out, "Food & Dining")
}

func TestImportAndExport(t *testing.T) {
	dir := newWallet(t)
	acct := createdID(t, mustRun(t, dir, "account", "add", "--name", "Chase"))

	out := mustRun(t, dir, "import", "chase", "../importer/testdata/chase_checking.csv", "--account", acct)
	assert.Contains(t, out, "Imported 6 transactions")

	repo := loadRepo(t, dir)
	require.Len(t, repo.Transactions(), 6)
	assert.Equal(t, "3232.44", repo.Accounts()[0].Balance.StringFixed(2))

	_, err := runWallet(t, dir, "import", "ofx", "x.ofx", "--account", acct)
	assert.ErrorContains(t, err, "unknown import format")

	out = mustRun(t, dir, "export", "transactions")
	assert.Contains(t, out, "transaction_id,date,type,amount,account,category,description,recurring")
	assert.Contains(t, out, "3500.00,Chase,Other Income,ACME CONSULTING INVOICE 1042")

	path := filepath.Join(t.TempDir(), "accounts.csv")
	mustRun(t, dir, "export", "accounts", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3232.44")
}

func TestImport_SkipsRowsAlreadyBooked(t *testing.T) {
	dir := newWallet(t)
	acct := createdID(t, mustRun(t, dir, "account", "add", "--name", "Chase"))
	other := createdID(t, mustRun(t, dir, "account", "add", "--name", "Savings"))
	const statement = "../importer/testdata/chase_checking.csv"

	mustRun(t, dir, "import", "chase", statement, "--account", acct)
	out := mustRun(t, dir, "import", "chase", statement, "--account", acct)
	assert.Contains(t, out, "Imported 0 transactions")
	assert.Contains(t, out, "(6 already imported)")

	repo := loadRepo(t, dir)
	require.Len(t, repo.Transactions(), 6)
	for _, a := range repo.Accounts() {
		if a.Name == "Chase" {
			assert.Equal(t, "3232.44", a.Balance.StringFixed(2))
		}
	}
	for _, txn := range repo.Transactions() {
		assert.True(t, strings.HasPrefix(txn.Reference, "chase_2025"), "reference %q", txn.Reference)
	}

	out = mustRun(t, dir, "import", "chase", statement, "--account", other)
	assert.Contains(t, out, "Imported 6 transactions")
	assert.NotContains(t, out, "already imported")
}

func TestImportInbox(t *testing.T) {
	dir := newWallet(t)
	acct := createdID(t, mustRun(t, dir, "account", "add", "--name", "Chase"))

	out := mustRun(t, dir, "import", "inbox", "--account", acct)
	assert.Contains(t, out, "Nothing to import")

	data, err := os.ReadFile("../importer/testdata/chase_checking.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "jan.csv"), data, 0o644))

	out = mustRun(t, dir, "import", "inbox", "--account", acct)
	assert.Contains(t, out, "Imported 6 transactions from jan.csv")
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "jan.csv"))
	require.NoError(t, err)

	out = mustRun(t, dir, "import", "inbox", "--account", acct)
	assert.Contains(t, out, "Nothing to import")
	assert.Len(t, loadRepo(t, dir).Transactions(), 6)
}

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz"}
	self := func(s string) string { return s }

	got, err := resolveID("thing", "xyz", ids, self)
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	got, err = resolveID("thing", "abc", ids, self)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = resolveID("thing", "ab", ids, self)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveID("thing", "q", ids, self)
	assert.ErrorContains(t, err, "no thing")

	uuids := []string{"9b2f0c1e-6a4d-4f0e-8d7a-2c1b3e4f5a6b", "9b2f0c1e-6a4d-4f0e-8d7a-2c1b3e4f5a6c"}
	got, err = resolveID("account", "9B2F0C1E-6A4D-4F0E-8D7A-2C1B3E4F5A6B", uuids, self)
	require.NoError(t, err)
	assert.Equal(t, uuids[0], got)
}
