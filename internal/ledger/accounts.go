package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/walletkit/walletkit/internal/id"
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/repository"
)

// AccountInput holds the caller-supplied fields of a new account. Balance is
// the opening balance. An empty Currency takes the settings default.
type AccountInput struct {
	Name     string
	Type     model.AccountType
	Balance  decimal.Decimal
	Currency model.Currency
	Color    string
	Icon     string
}

// AddAccount creates an account with a fresh id and the opening balance.
func (s *Service) AddAccount(ctx context.Context, in AccountInput) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a := model.Account{
		ID:        id.New(),
		Name:      in.Name,
		Type:      in.Type,
		Balance:   in.Balance,
		Currency:  in.Currency,
		Color:     in.Color,
		Icon:      in.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if a.Currency == "" {
		a.Currency = s.repo.Settings().DefaultCurrency
	}
	if err := validateAccount(a); err != nil {
		return model.Account{}, err
	}

	accounts := append(s.repo.Accounts(), a)
	if err := s.repo.Replace(ctx, repository.AccountsChange(accounts)); err != nil {
		return model.Account{}, fmt.Errorf("adding account: %w", err)
	}
	s.log.Debug("account added", "id", a.ID, "name", a.Name)
	return a, nil
}

// UpdateAccount replaces the descriptive fields of an existing account. The
// stored balance and creation time are kept; only transactions move a balance.
func (s *Service) UpdateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	if err := validateAccount(a); err != nil {
		return model.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.repo.Accounts()
	i := indexOf(accounts, func(x model.Account) bool { return x.ID == a.ID })
	if i < 0 {
		return model.Account{}, fmt.Errorf("account %s: %w", a.ID, ErrNotFound)
	}
	old := accounts[i]
	a.Balance = old.Balance
	a.CreatedAt = old.CreatedAt
	a.UpdatedAt = later(s.now(), old.UpdatedAt)
	accounts[i] = a

	if err := s.repo.Replace(ctx, repository.AccountsChange(accounts)); err != nil {
		return model.Account{}, fmt.Errorf("updating account: %w", err)
	}
	return a, nil
}

// DeleteAccount removes the account and every transaction referencing it in
// one commit. Deleting an unknown id is a no-op.
func (s *Service) DeleteAccount(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.repo.Accounts()
	keptAccounts := accounts[:0:0]
	for _, a := range accounts {
		if a.ID != accountID {
			keptAccounts = append(keptAccounts, a)
		}
	}
	txns := s.repo.Transactions()
	keptTxns := txns[:0:0]
	for _, t := range txns {
		if t.AccountID != accountID {
			keptTxns = append(keptTxns, t)
		}
	}

	var changes []repository.Change
	if len(keptAccounts) != len(accounts) {
		changes = append(changes, repository.AccountsChange(keptAccounts))
	}
	if len(keptTxns) != len(txns) {
		changes = append(changes, repository.TransactionsChange(keptTxns))
	}
	if len(changes) == 0 {
		return nil
	}
	if err := s.repo.Replace(ctx, changes...); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	s.log.Debug("account deleted", "id", accountID, "transactions", len(txns)-len(keptTxns))
	return nil
}
