// Package export writes wallet collections as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/walletkit/walletkit/internal/model"
)

const dateFormat = "2006-01-02"

var accountHeader = []string{"account_id", "name", "type", "currency", "balance", "created_at"}

const (
	accountFields  = 6
	colAcctID      = 0
	colAcctName    = 1
	colAcctType    = 2
	colAcctCur     = 3
	colAcctBalance = 4
	colAcctCreated = 5
)

var transactionHeader = []string{
	"transaction_id", "date", "type", "amount", "account", "category", "description", "recurring",
}

const (
	txnFields    = 8
	colTxnID     = 0
	colTxnDate   = 1
	colTxnType   = 2
	colTxnAmount = 3
	colTxnAcct   = 4
	colTxnCat    = 5
	colTxnDesc   = 6
	colTxnRecur  = 7
)

// WriteAccounts writes one row per account.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(accountHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accounts {
		if err := cw.Write(MarshalAccount(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(a model.Account) []string {
	row := make([]string, accountFields)
	row[colAcctID] = a.ID
	row[colAcctName] = a.Name
	row[colAcctType] = string(a.Type)
	row[colAcctCur] = string(a.Currency)
	row[colAcctBalance] = a.Balance.StringFixed(2)
	row[colAcctCreated] = a.CreatedAt.Format(time.RFC3339)
	return row
}

// Names resolves ids to display names. Missing ids render as the raw id.
type Names struct {
	Accounts   map[string]string
	Categories map[string]string
}

// NamesFrom indexes account and category names.
func NamesFrom(accounts []model.Account, categories []model.Category) Names {
	n := Names{
		Accounts:   make(map[string]string, len(accounts)),
		Categories: make(map[string]string, len(categories)),
	}
	for _, a := range accounts {
		n.Accounts[a.ID] = a.Name
	}
	for _, c := range categories {
		n.Categories[c.ID] = c.Name
	}
	return n
}

func lookup(m map[string]string, id string) string {
	if name, ok := m[id]; ok {
		return name
	}
	return id
}

// WriteTransactions writes one row per transaction with names resolved.
func WriteTransactions(w io.Writer, txns []model.Transaction, names Names) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(transactionHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t, names)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row. The amount carries
// the sign of its balance effect.
func MarshalTransaction(t model.Transaction, names Names) []string {
	row := make([]string, txnFields)
	row[colTxnID] = t.ID
	row[colTxnDate] = t.Date.Format(dateFormat)
	row[colTxnType] = string(t.Type)
	row[colTxnAmount] = t.Delta().StringFixed(2)
	row[colTxnAcct] = lookup(names.Accounts, t.AccountID)
	row[colTxnCat] = lookup(names.Categories, t.CategoryID)
	row[colTxnDesc] = t.Description
	if t.IsRecurring {
		row[colTxnRecur] = string(t.RecurringFrequency)
		if row[colTxnRecur] == "" {
			row[colTxnRecur] = strconv.FormatBool(true)
		}
	}
	return row
}
