package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletkit/walletkit/internal/id"
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/repository"
)

// TransactionInput holds the caller-supplied fields of a new transaction.
// A zero Date means now.
type TransactionInput struct {
	AccountID          string
	Amount             decimal.Decimal
	Type               model.TransactionType
	CategoryID         string
	Description        string
	Date               time.Time
	Location           string
	ReceiptImage       string
	IsRecurring        bool
	RecurringFrequency model.Frequency
	Reference          string
}

func (in TransactionInput) record(now time.Time) model.Transaction {
	t := model.Transaction{
		ID:                 id.New(),
		AccountID:          in.AccountID,
		Amount:             in.Amount,
		Type:               in.Type,
		CategoryID:         in.CategoryID,
		Description:        in.Description,
		Date:               in.Date,
		Location:           in.Location,
		ReceiptImage:       in.ReceiptImage,
		IsRecurring:        in.IsRecurring,
		RecurringFrequency: in.RecurringFrequency,
		Reference:          in.Reference,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if t.Date.IsZero() {
		t.Date = now
	}
	return t
}

// AddTransaction records a transaction and applies its delta to the account
// balance in the same commit. A transaction whose account does not exist is
// still recorded; no balance changes.
func (s *Service) AddTransaction(ctx context.Context, in TransactionInput) (model.Transaction, error) {
	added, err := s.AddTransactions(ctx, []TransactionInput{in})
	if err != nil {
		return model.Transaction{}, err
	}
	return added[0], nil
}

// AddTransactions records a batch of transactions in one commit. Every input
// is validated before anything is written.
func (s *Service) AddTransactions(ctx context.Context, ins []TransactionInput) ([]model.Transaction, error) {
	if len(ins) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	added := make([]model.Transaction, len(ins))
	var verrs ValidationErrors
	for i, in := range ins {
		added[i] = in.record(now)
		if err := validateTransaction(added[i]); err != nil {
			verrs = append(verrs, err.(ValidationErrors)...)
		}
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	txns := append(s.repo.Transactions(), added...)
	accounts := s.repo.Accounts()
	balancesMoved := false
	for _, t := range added {
		if applyDelta(accounts, t.AccountID, t.Delta(), now) {
			balancesMoved = true
		} else {
			s.log.Warn("transaction references unknown account", "id", t.ID, "account", t.AccountID)
		}
	}

	changes := []repository.Change{repository.TransactionsChange(txns)}
	if balancesMoved {
		changes = append(changes, repository.AccountsChange(accounts))
	}
	if err := s.repo.Replace(ctx, changes...); err != nil {
		return nil, fmt.Errorf("adding transactions: %w", err)
	}
	s.log.Debug("transactions added", "count", len(added))
	return added, nil
}

// UpdateTransaction replaces an existing transaction. When the amount, type
// or account changed, the old delta is reverted and the new one applied, so
// the end state equals deleting the old record and adding the new one.
func (s *Service) UpdateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	if err := validateTransaction(t); err != nil {
		return model.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txns := s.repo.Transactions()
	i := indexOf(txns, func(x model.Transaction) bool { return x.ID == t.ID })
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", t.ID, ErrNotFound)
	}
	old := txns[i]
	now := s.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = old.CreatedAt
	}
	t.UpdatedAt = later(now, old.UpdatedAt)
	txns[i] = t

	changes := []repository.Change{repository.TransactionsChange(txns)}
	if old.AffectsBalance(t) {
		accounts := s.repo.Accounts()
		reverted := applyDelta(accounts, old.AccountID, old.Delta().Neg(), now)
		applied := applyDelta(accounts, t.AccountID, t.Delta(), now)
		if reverted || applied {
			changes = append(changes, repository.AccountsChange(accounts))
		}
	}
	if err := s.repo.Replace(ctx, changes...); err != nil {
		return model.Transaction{}, fmt.Errorf("updating transaction: %w", err)
	}
	return t, nil
}

// DeleteTransaction removes a transaction and reverts its delta. Deleting an
// unknown id is a no-op.
func (s *Service) DeleteTransaction(ctx context.Context, txnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := s.repo.Transactions()
	i := indexOf(txns, func(x model.Transaction) bool { return x.ID == txnID })
	if i < 0 {
		return nil
	}
	old := txns[i]
	txns = append(txns[:i], txns[i+1:]...)

	changes := []repository.Change{repository.TransactionsChange(txns)}
	accounts := s.repo.Accounts()
	if applyDelta(accounts, old.AccountID, old.Delta().Neg(), s.now()) {
		changes = append(changes, repository.AccountsChange(accounts))
	}
	if err := s.repo.Replace(ctx, changes...); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}
