package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies where an account's money is held.
type AccountType string

const (
	AccountTypeCash    AccountType = "cash"
	AccountTypeCredit  AccountType = "credit"
	AccountTypeBank    AccountType = "bank"
	AccountTypeDigital AccountType = "digital"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCash, AccountTypeCredit, AccountTypeBank, AccountTypeDigital:
		return true
	}
	return false
}

// Account is a balance-holding entity. Balance is the opening balance plus the
// signed effect of every transaction that references the account.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  Currency        `json:"currency"`
	Color     string          `json:"color"`
	Icon      string          `json:"icon,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
