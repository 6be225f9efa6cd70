// Package repository holds the wallet's authoritative in-memory collections
// and commits whole-collection replacements to the persistent store.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/walletkit/walletkit/internal/log"
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/store"
)

// Repository owns every wallet collection. Readers get copies; the only way
// to change a collection is Replace.
type Repository struct {
	store store.Store
	log   *log.Logger

	commitMu sync.Mutex // serializes Replace

	mu           sync.RWMutex
	loaded       bool
	accounts     []model.Account
	transactions []model.Transaction
	budgets      []model.Budget
	savingsGoals []model.SavingsGoal
	categories   []model.Category
	settings     model.Settings
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the repository logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Repository) { r.log = l.WithComponent("repository") }
}

// New creates a Repository over s. Call Load before use.
func New(s store.Store, opts ...Option) *Repository {
	r := &Repository{
		store:    s,
		log:      log.Discard(),
		settings: model.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads all six collections from the store. Missing collections become
// empty, except categories (seeded with DefaultCategories and persisted) and
// settings (DefaultSettings).
func (r *Repository) Load(ctx context.Context) error {
	raw := make(map[string][]byte, len(store.Keys))
	var rawMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range store.Keys {
		key := key
		g.Go(func() error {
			v, ok, err := r.store.Get(gctx, key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", key, err)
			}
			if ok && len(bytes.TrimSpace(v)) > 0 {
				rawMu.Lock()
				raw[key] = v
				rawMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var (
		accounts     []model.Account
		transactions []model.Transaction
		budgets      []model.Budget
		savingsGoals []model.SavingsGoal
		categories   []model.Category
		settings     = model.DefaultSettings()
	)
	decoders := []struct {
		key string
		dst any
	}{
		{store.KeyAccounts, &accounts},
		{store.KeyTransactions, &transactions},
		{store.KeyBudgets, &budgets},
		{store.KeySavingsGoals, &savingsGoals},
		{store.KeyCategories, &categories},
		{store.KeySettings, &settings},
	}
	for _, d := range decoders {
		data, ok := raw[d.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, d.dst); err != nil {
			return fmt.Errorf("parsing %s: %w", d.key, err)
		}
	}

	seed := len(categories) == 0
	if seed {
		categories = DefaultCategories()
	}
	if settings.DefaultCurrency == "" {
		settings.DefaultCurrency = model.USD
	}

	r.mu.Lock()
	r.accounts = nonNil(accounts)
	r.transactions = nonNil(transactions)
	r.budgets = nonNil(budgets)
	r.savingsGoals = nonNil(savingsGoals)
	r.categories = categories
	r.settings = settings
	r.loaded = true
	r.mu.Unlock()

	r.log.Debug("collections loaded",
		"accounts", len(accounts),
		"transactions", len(transactions),
		"budgets", len(budgets),
		"categories", len(categories))

	if seed {
		if err := r.Replace(ctx, CategoriesChange(categories)); err != nil {
			return fmt.Errorf("seeding default categories: %w", err)
		}
		r.log.Info("seeded default categories", "count", len(categories))
	}
	return nil
}

// Replace commits one or more whole collections as a single unit. Either
// every collection is stored and the in-memory view updated, or the view is
// left untouched and collections already written are restored. When a
// restore fails too, the error is a *PartialWriteError.
func (r *Repository) Replace(ctx context.Context, changes ...Change) error {
	if len(changes) == 0 {
		return nil
	}

	r.commitMu.Lock()
	defer r.commitMu.Unlock()

	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if !loaded {
		return ErrNotLoaded
	}

	blobs := make([][]byte, len(changes))
	for i, c := range changes {
		data, err := json.Marshal(c.value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", c.key, err)
		}
		blobs[i] = data
	}

	if err := r.write(ctx, changes, blobs); err != nil {
		return err
	}

	r.mu.Lock()
	for _, c := range changes {
		c.apply(r)
	}
	r.mu.Unlock()

	r.log.Debug("collections committed", "keys", changeKeys(changes))
	return nil
}

func (r *Repository) write(ctx context.Context, changes []Change, blobs [][]byte) error {
	if bs, ok := r.store.(store.BatchSetter); ok && len(changes) > 1 {
		values := make(map[string][]byte, len(changes))
		for i, c := range changes {
			values[c.key] = blobs[i]
		}
		if err := bs.SetMany(ctx, values); err != nil {
			return fmt.Errorf("writing %s: %w", strings.Join(changeKeys(changes), ", "), err)
		}
		return nil
	}

	for i, c := range changes {
		if err := r.store.Set(ctx, c.key, blobs[i]); err != nil {
			return r.rollback(ctx, changes[:i], fmt.Errorf("writing %s: %w", c.key, err))
		}
	}
	return nil
}

// rollback restores the previously committed value of each written
// collection. The in-memory view still holds those values.
func (r *Repository) rollback(ctx context.Context, written []Change, cause error) error {
	if len(written) == 0 {
		return cause
	}
	ctx = context.WithoutCancel(ctx)

	var failed []string
	for _, c := range written {
		prev, err := r.committed(c.key)
		if err == nil {
			err = r.store.Set(ctx, c.key, prev)
		}
		if err != nil {
			r.log.Error("restoring collection after failed commit", "key", c.key, "error", err)
			failed = append(failed, c.key)
		}
	}
	if len(failed) > 0 {
		return &PartialWriteError{Keys: failed, Err: cause}
	}
	r.log.Warn("commit rolled back", "keys", changeKeys(written), "error", cause)
	return cause
}

// committed encodes the in-memory (last committed) value of key.
func (r *Repository) committed(key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var v any
	switch key {
	case store.KeyAccounts:
		v = r.accounts
	case store.KeyTransactions:
		v = r.transactions
	case store.KeyBudgets:
		v = r.budgets
	case store.KeySavingsGoals:
		v = r.savingsGoals
	case store.KeyCategories:
		v = r.categories
	case store.KeySettings:
		v = r.settings
	default:
		return nil, fmt.Errorf("unknown collection %q", key)
	}
	return json.Marshal(v)
}

func changeKeys(changes []Change) []string {
	keys := make([]string, len(changes))
	for i, c := range changes {
		keys[i] = c.key
	}
	return keys
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// clone copies s so callers never alias repository storage.
func clone[T any](s []T) []T {
	return nonNil(slices.Clone(s))
}
