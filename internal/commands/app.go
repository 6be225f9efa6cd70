package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/config"
	"github.com/walletkit/walletkit/internal/ledger"
	"github.com/walletkit/walletkit/internal/log"
	"github.com/walletkit/walletkit/internal/repository"
	"github.com/walletkit/walletkit/internal/stats"
	"github.com/walletkit/walletkit/internal/store"
)

const pinEnv = "WALLETKIT_PIN"

// errLocked is returned when the wallet has a PIN and none or a wrong one
// was given.
var errLocked = errors.New("wallet is locked: pass --pin or set " + pinEnv)

// app is the wiring for one command invocation.
type app struct {
	root   string
	cfg    *config.Config
	log    *log.Logger
	store  store.Store
	repo   *repository.Repository
	ledger *ledger.Service
	stats  *stats.Calculator
}

// openApp loads config, opens the store and loads the repository.
func openApp(ctx context.Context, cmd *cobra.Command, g *globalFlags) (*app, error) {
	root, err := filepath.Abs(g.repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no wallet at %s (run walletkit init): %w", root, err)
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.FileName, err)
	}
	return openWith(ctx, cmd, root, cfg)
}

func openWith(ctx context.Context, cmd *cobra.Command, root string, cfg *config.Config) (*app, error) {
	level, _ := log.ParseLevel(cfg.Log.Level)
	logger := log.New(log.Config{
		Level:     level,
		Component: "walletkit",
		Format:    cfg.Log.Format,
		Output:    cmd.ErrOrStderr(),
	})
	log.SetDefault(logger)

	s, err := store.Open(ctx, store.Backend(cfg.Store.Backend), cfg.StorePath(root))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	repo := repository.New(s, repository.WithLogger(logger))
	if err := repo.Load(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("loading wallet: %w", err)
	}

	return &app{
		root:   root,
		cfg:    cfg,
		log:    logger,
		store:  s,
		repo:   repo,
		ledger: ledger.NewService(repo, ledger.WithLogger(logger)),
		stats:  stats.NewCalculator(repo),
	}, nil
}

// openUnlocked is openApp plus the PIN gate.
func openUnlocked(ctx context.Context, cmd *cobra.Command, g *globalFlags) (*app, error) {
	a, err := openApp(ctx, cmd, g)
	if err != nil {
		return nil, err
	}
	if !a.repo.Settings().PinEnabled {
		return a, nil
	}
	code := g.pin
	if code == "" {
		code = os.Getenv(pinEnv)
	}
	if !a.ledger.VerifyPIN(code) {
		a.Close()
		return nil, errLocked
	}
	return a, nil
}

// Close releases the store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing store", "error", err)
	}
}

// withApp runs fn against an unlocked wallet.
func withApp(cmd *cobra.Command, g *globalFlags, fn func(a *app) error) error {
	a, err := openUnlocked(cmd.Context(), cmd, g)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
