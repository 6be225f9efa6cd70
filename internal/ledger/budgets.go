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

// BudgetInput holds the fields of a new budget. An empty Period means monthly
// and a zero StartDate means the start of the current period.
type BudgetInput struct {
	Title      string
	CategoryID string
	Amount     decimal.Decimal
	Period     model.BudgetPeriod
	StartDate  time.Time
	EndDate    *time.Time
}

// AddBudget creates a budget.
func (s *Service) AddBudget(ctx context.Context, in BudgetInput) (model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b := model.Budget{
		ID:         id.New(),
		Title:      in.Title,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Period:     in.Period,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if b.Period == "" {
		b.Period = model.BudgetPeriodMonthly
	}
	if b.StartDate.IsZero() {
		b.StartDate = b.Period.Start(now)
	}
	if err := validateBudget(b); err != nil {
		return model.Budget{}, err
	}

	budgets := append(s.repo.Budgets(), b)
	if err := s.repo.Replace(ctx, repository.BudgetsChange(budgets)); err != nil {
		return model.Budget{}, fmt.Errorf("adding budget: %w", err)
	}
	return b, nil
}

// UpdateBudget replaces an existing budget.
func (s *Service) UpdateBudget(ctx context.Context, b model.Budget) (model.Budget, error) {
	if err := validateBudget(b); err != nil {
		return model.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := s.repo.Budgets()
	i := indexOf(budgets, func(x model.Budget) bool { return x.ID == b.ID })
	if i < 0 {
		return model.Budget{}, fmt.Errorf("budget %s: %w", b.ID, ErrNotFound)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = budgets[i].CreatedAt
	}
	b.UpdatedAt = later(s.now(), budgets[i].UpdatedAt)
	budgets[i] = b
	if err := s.repo.Replace(ctx, repository.BudgetsChange(budgets)); err != nil {
		return model.Budget{}, fmt.Errorf("updating budget: %w", err)
	}
	return b, nil
}

// DeleteBudget removes a budget. Deleting an unknown id is a no-op.
func (s *Service) DeleteBudget(ctx context.Context, budgetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := s.repo.Budgets()
	i := indexOf(budgets, func(x model.Budget) bool { return x.ID == budgetID })
	if i < 0 {
		return nil
	}
	budgets = append(budgets[:i], budgets[i+1:]...)
	if err := s.repo.Replace(ctx, repository.BudgetsChange(budgets)); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	return nil
}
