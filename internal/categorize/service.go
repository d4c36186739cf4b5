package categorize

import (
	"context"

	"github.com/asahu12/finsight/internal/expense"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	FindCategory(ctx context.Context, rawDescription string) (expense.Category, error)
	CreateRule(ctx context.Context, pattern string, category expense.Category) error
}

// Service maps raw bank-statement descriptions to expense categories using
// user-taught substring rules.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category matching the raw description, falling back to
// Other when no rule applies.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (expense.Category, error) {
	c, err := s.repo.FindCategory(ctx, rawDescription)
	if err != nil {
		return "", err
	}

	if c == "" {
		return expense.CategoryOther, nil
	}

	return c, nil
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, pattern string, category expense.Category) error {
	if !category.Valid() {
		return expense.ErrInvalidCategory
	}

	return s.repo.CreateRule(ctx, pattern, category)
}
