package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a money movement.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Frequency is recurrence metadata. Nothing generates transactions from it.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is a known frequency. The empty frequency is valid.
func (f Frequency) Valid() bool {
	switch f {
	case "", FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Transaction is a single dated money movement against one account.
type Transaction struct {
	ID                 string          `json:"id"`
	AccountID          string          `json:"accountId"`
	Amount             decimal.Decimal `json:"amount"` // always positive
	Type               TransactionType `json:"type"`
	CategoryID         string          `json:"categoryId"`
	Description        string          `json:"description"`
	Date               time.Time       `json:"date"`
	Location           string          `json:"location,omitempty"`
	ReceiptImage       string          `json:"receiptImage,omitempty"`
	IsRecurring        bool            `json:"isRecurring,omitempty"`
	RecurringFrequency Frequency       `json:"recurringFrequency,omitempty"`
	Reference          string          `json:"reference,omitempty"` // statement line id for imported rows
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Delta returns the signed effect of the transaction on its account balance.
// Income credits the account; expense and transfer debit it.
func (t Transaction) Delta() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// AffectsBalance reports whether replacing t with other changes any balance.
func (t Transaction) AffectsBalance(other Transaction) bool {
	return !t.Amount.Equal(other.Amount) || t.Type != other.Type || t.AccountID != other.AccountID
}
