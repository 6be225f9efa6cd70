package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/walletkit/walletkit/internal/config"
	"github.com/walletkit/walletkit/internal/ledger"
	"github.com/walletkit/walletkit/internal/store"
)

func newInitCommand(g *globalFlags) *cobra.Command {
	var backend string
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new wallet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := g.repoDir
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir, backend, currency)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", string(store.BackendFile), "store backend (file, sqlite)")
	cmd.Flags().StringVar(&currency, "currency", "USD", "default currency")

	return cmd
}

func runInit(cmd *cobra.Command, dir, backend, currency string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default()
	cfg.Store.Backend = backend
	if backend == string(store.BackendSQLite) {
		cfg.Store.Path = "wallet.db"
	}
	cur, err := parseCurrency("currency", currency)
	if err != nil {
		return err
	}
	cfg.Defaults.Currency = string(cur)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Store.Backend == string(store.BackendMemory) {
		return fmt.Errorf("--backend: memory wallets cannot be initialized on disk")
	}

	for _, d := range []string{"", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	// Opening the store seeds default categories.
	a, err := openWith(cmd.Context(), cmd, dir, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	c := cfg.Currency()
	if _, err := a.ledger.UpdateSettings(cmd.Context(), ledger.SettingsUpdate{DefaultCurrency: &c}); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized walletkit wallet at %s (%s store)\n", dir, cfg.Store.Backend)
	return nil
}
