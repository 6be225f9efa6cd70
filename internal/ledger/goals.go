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

// SavingsGoalInput holds the fields of a new savings goal. An empty Currency
// takes the settings default.
type SavingsGoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Currency      model.Currency
	Deadline      *time.Time
}

// AddSavingsGoal creates a savings goal.
func (s *Service) AddSavingsGoal(ctx context.Context, in SavingsGoalInput) (model.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	g := model.SavingsGoal{
		ID:            id.New(),
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Currency:      in.Currency,
		Deadline:      in.Deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if g.Currency == "" {
		g.Currency = s.repo.Settings().DefaultCurrency
	}
	if err := validateSavingsGoal(g); err != nil {
		return model.SavingsGoal{}, err
	}

	goals := append(s.repo.SavingsGoals(), g)
	if err := s.repo.Replace(ctx, repository.SavingsGoalsChange(goals)); err != nil {
		return model.SavingsGoal{}, fmt.Errorf("adding savings goal: %w", err)
	}
	return g, nil
}

// UpdateSavingsGoal replaces an existing savings goal.
func (s *Service) UpdateSavingsGoal(ctx context.Context, g model.SavingsGoal) (model.SavingsGoal, error) {
	if err := validateSavingsGoal(g); err != nil {
		return model.SavingsGoal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals := s.repo.SavingsGoals()
	i := indexOf(goals, func(x model.SavingsGoal) bool { return x.ID == g.ID })
	if i < 0 {
		return model.SavingsGoal{}, fmt.Errorf("savings goal %s: %w", g.ID, ErrNotFound)
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = goals[i].CreatedAt
	}
	g.UpdatedAt = later(s.now(), goals[i].UpdatedAt)
	goals[i] = g
	if err := s.repo.Replace(ctx, repository.SavingsGoalsChange(goals)); err != nil {
		return model.SavingsGoal{}, fmt.Errorf("updating savings goal: %w", err)
	}
	return g, nil
}

// DeleteSavingsGoal removes a savings goal. Deleting an unknown id is a no-op.
func (s *Service) DeleteSavingsGoal(ctx context.Context, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals := s.repo.SavingsGoals()
	i := indexOf(goals, func(x model.SavingsGoal) bool { return x.ID == goalID })
	if i < 0 {
		return nil
	}
	goals = append(goals[:i], goals[i+1:]...)
	if err := s.repo.Replace(ctx, repository.SavingsGoalsChange(goals)); err != nil {
		return fmt.Errorf("deleting savings goal: %w", err)
	}
	return nil
}
