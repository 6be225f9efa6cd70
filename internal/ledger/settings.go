package ledger

import (
	"context"
	"fmt"

	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/pin"
	"github.com/walletkit/walletkit/internal/repository"
)

// SettingsUpdate carries a partial settings change. Nil fields are left as
// they are. PIN is the plain code; only its hash is stored.
type SettingsUpdate struct {
	DefaultCurrency *model.Currency
	PinEnabled      *bool
	PIN             *string
	HideBalances    *bool
}

// UpdateSettings merges u into the stored settings. Enabling the PIN lock
// requires a PIN unless one is already set; disabling it clears the hash.
func (s *Service) UpdateSettings(ctx context.Context, u SettingsUpdate) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.repo.Settings()
	v := validator{entity: "settings"}

	if u.DefaultCurrency != nil {
		v.currency("defaultCurrency", *u.DefaultCurrency)
		settings.DefaultCurrency = *u.DefaultCurrency
	}
	if u.HideBalances != nil {
		settings.HideBalances = *u.HideBalances
	}
	if u.PinEnabled != nil {
		settings.PinEnabled = *u.PinEnabled
	}
	switch {
	case !settings.PinEnabled && u.PIN != nil:
		v.add("pin", "cannot be set while the PIN lock is disabled")
	case !settings.PinEnabled:
		settings.PinHash = ""
	case u.PIN != nil:
		hash, err := pin.Hash(*u.PIN)
		if err != nil {
			v.add("pin", "%v", err)
			break
		}
		settings.PinHash = hash
	case settings.PinHash == "":
		v.add("pin", "is required to enable the PIN lock")
	}
	if err := v.err(); err != nil {
		return model.Settings{}, err
	}

	if err := s.repo.Replace(ctx, repository.SettingsChange(settings)); err != nil {
		return model.Settings{}, fmt.Errorf("updating settings: %w", err)
	}
	return settings, nil
}

// VerifyPIN reports whether code unlocks the wallet. It is false whenever
// the PIN lock is disabled.
func (s *Service) VerifyPIN(code string) bool {
	settings := s.repo.Settings()
	return settings.PinEnabled && pin.Check(code, settings.PinHash)
}
