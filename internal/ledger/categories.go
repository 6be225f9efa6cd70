package ledger

import (
	"context"
	"fmt"

	"github.com/walletkit/walletkit/internal/id"
	"github.com/walletkit/walletkit/internal/model"
	"github.com/walletkit/walletkit/internal/repository"
)

// CategoryInput holds the fields of a user-defined category.
type CategoryInput struct {
	Name  string
	Type  model.CategoryType
	Icon  string
	Color string
}

// AddCategory creates a user category. User categories are never default.
func (s *Service) AddCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	c := model.Category{ID: id.New(), Name: in.Name, Type: in.Type, Icon: in.Icon, Color: in.Color}
	if err := validateCategory(c); err != nil {
		return model.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := append(s.repo.Categories(), c)
	if err := s.repo.Replace(ctx, repository.CategoriesChange(categories)); err != nil {
		return model.Category{}, fmt.Errorf("adding category: %w", err)
	}
	return c, nil
}

// UpdateCategory replaces an existing category. The default flag is kept
// from the stored record.
func (s *Service) UpdateCategory(ctx context.Context, c model.Category) (model.Category, error) {
	if err := validateCategory(c); err != nil {
		return model.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.repo.Categories()
	i := indexOf(categories, func(x model.Category) bool { return x.ID == c.ID })
	if i < 0 {
		return model.Category{}, fmt.Errorf("category %s: %w", c.ID, ErrNotFound)
	}
	c.IsDefault = categories[i].IsDefault
	categories[i] = c
	if err := s.repo.Replace(ctx, repository.CategoriesChange(categories)); err != nil {
		return model.Category{}, fmt.Errorf("updating category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a user category. Default categories are rejected
// with ErrDefaultCategory. Transactions keep their dangling category id.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.repo.Categories()
	i := indexOf(categories, func(x model.Category) bool { return x.ID == categoryID })
	if i < 0 {
		return nil
	}
	if categories[i].IsDefault {
		return fmt.Errorf("category %q: %w", categories[i].Name, ErrDefaultCategory)
	}
	categories = append(categories[:i], categories[i+1:]...)
	if err := s.repo.Replace(ctx, repository.CategoriesChange(categories)); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}
