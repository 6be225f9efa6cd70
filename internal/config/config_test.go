package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletkit/walletkit/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "sqlite"
	cfg.Store.Path = "wallet.db"
	cfg.Log.Level = "debug"
	cfg.Defaults.Currency = "EUR"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", got.Store.Backend)
	assert.Equal(t, "wallet.db", got.Store.Path)
	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, "text", got.Log.Format, "defaulted")
	assert.Equal(t, model.Currency("EUR"), got.Currency())
	require.NoError(t, got.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "data", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, model.USD, cfg.Currency())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingKeysDefaulted(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", got.Log.Level)
	assert.Equal(t, "file", got.Store.Backend)
	assert.Equal(t, "data", got.Store.Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))
	t.Setenv("WALLETKIT_STORE_BACKEND", "memory")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", got.Store.Backend)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, Save(path, Default()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WALLETKIT_DEFAULTS_CURRENCY=JPY\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("WALLETKIT_DEFAULTS_CURRENCY") })

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.Currency("JPY"), got.Currency())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "redis"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Defaults.Currency = "DOGE"

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"store.backend", "log.level", "log.format", "defaults.currency"} {
		assert.Contains(t, err.Error(), field)
	}

	cfg = Default()
	cfg.Store.Path = ""
	assert.ErrorContains(t, cfg.Validate(), "store.path")
	cfg.Store.Backend = "memory"
	assert.NoError(t, cfg.Validate())
}

func TestStorePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/w", "data"), cfg.StorePath("/w"))
	cfg.Store.Path = "/abs/db.sqlite"
	assert.Equal(t, "/abs/db.sqlite", cfg.StorePath("/w"))
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "backend: file")
	assert.Contains(t, contents, "path: data")
	assert.Contains(t, contents, "level: info")
	assert.Contains(t, contents, "currency: USD")
}
