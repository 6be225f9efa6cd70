// Package store implements the durable key/blob stores the wallet
// repository reads and writes whole collections through.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Fixed logical keys, one per persisted collection.
const (
	KeyAccounts     = "wallet_accounts"
	KeyTransactions = "wallet_transactions"
	KeyBudgets      = "wallet_budgets"
	KeySavingsGoals = "wallet_savings_goals"
	KeyCategories   = "wallet_categories"
	KeySettings     = "wallet_settings"
)

// Keys lists every collection key in load order.
var Keys = []string{KeyAccounts, KeyTransactions, KeyBudgets, KeySavingsGoals, KeyCategories, KeySettings}

// ErrInvalidKey is returned for keys that cannot be stored safely.
var ErrInvalidKey = errors.New("invalid store key")

// Store is a durable blob store addressed by key. Set replaces the whole
// value; there is no versioning, so the last writer wins.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// BatchSetter is implemented by stores that can write several keys
// atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}

// Backend selects a Store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendMemory, BackendFile, BackendSQLite:
		return true
	}
	return false
}

// Open creates the store for backend. path is a directory for the file
// backend and a database file for sqlite; memory ignores it.
func Open(ctx context.Context, backend Backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(path)
	case BackendSQLite:
		return NewSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
