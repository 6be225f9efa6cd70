package model

// Settings is the singleton preferences record. PinHash holds a salted hash,
// never the PIN itself.
type Settings struct {
	DefaultCurrency Currency `json:"defaultCurrency"`
	PinEnabled      bool     `json:"pinEnabled"`
	PinHash         string   `json:"pinHash,omitempty"`
	HideBalances    bool     `json:"hideBalances"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{DefaultCurrency: USD}
}
