package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("expense not found")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrInvalidCategory = errors.New("unknown category")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, userID, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, userID, id uuid.UUID) error

	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	DetachGoal(ctx context.Context, userID, goalID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    Category
	Description string
	Date        time.Time
	GoalID      *uuid.UUID
}

// ListFilter restricts a ledger listing. All fields are optional except UserID:
// every query is scoped to one owner.
type ListFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Category  *Category
	GoalID    *uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if params.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	if !params.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	if params.Description == "" {
		params.Description = DefaultDescription
	}

	if params.Date.IsZero() {
		params.Date = time.Now()
	}

	e := &Expense{
		UserID:      params.UserID,
		Amount:      params.Amount,
		Category:    params.Category,
		Description: params.Description,
		Date:        params.Date,
		GoalID:      params.GoalID,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

// UpdateParams carries a partial update: nil fields are left untouched.
type UpdateParams struct {
	Amount      *decimal.Decimal
	Category    *Category
	Description *string
	Date        *time.Time
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, params UpdateParams) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		if params.Amount.IsNegative() {
			return nil, ErrNegativeAmount
		}

		e.Amount = *params.Amount
	}

	if params.Category != nil {
		if !params.Category.Valid() {
			return nil, ErrInvalidCategory
		}

		e.Category = *params.Category
	}

	if params.Description != nil {
		e.Description = *params.Description
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, userID, id)
}

// ImportResult reports what a statement import did: rows written and rows
// skipped as duplicates of existing ledger entries.
type ImportResult struct {
	Imported []*Expense
	Skipped  int
}

// ImportBatch creates the parsed statement rows, skipping any row whose
// (date, amount, description) already exists in the ledger. Re-uploading the
// same statement is therefore a no-op.
func (s *Service) ImportBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	existing, err := s.repo.ListExpenses(ctx, ListFilter{
		UserID:    userID,
		StartDate: &minDate,
		EndDate:   &maxDate,
	})
	if err != nil {
		return nil, fmt.Errorf("listing existing expenses: %w", err)
	}

	// Amounts are matched with Equal, not as map keys: equal decimals can
	// render differently depending on how they were parsed or stored.
	lookup := make(map[string][]decimal.Decimal, len(existing))

	for _, e := range existing {
		k := dupKey(e.Date, e.Description)
		lookup[k] = append(lookup[k], e.Amount)
	}

	result := &ImportResult{}

	for _, p := range params {
		p.UserID = userID

		description := p.Description
		if description == "" {
			description = DefaultDescription
		}

		if containsAmount(lookup[dupKey(p.Date, description)], p.Amount) {
			result.Skipped++
			continue
		}

		e, err := s.Create(ctx, p)
		if err != nil {
			return nil, err
		}

		lookup[dupKey(e.Date, e.Description)] = append(lookup[dupKey(e.Date, e.Description)], e.Amount)
		result.Imported = append(result.Imported, e)
	}

	return result, nil
}

func dupKey(date time.Time, description string) string {
	return date.Format(time.DateOnly) + "|" + description
}

func containsAmount(amounts []decimal.Decimal, amount decimal.Decimal) bool {
	for _, a := range amounts {
		if a.Equal(amount) {
			return true
		}
	}

	return false
}

func dateRange(params []CreateParams) (minDate, maxDate time.Time) {
	minDate, maxDate = params[0].Date, params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

// DetachGoal clears the goal reference on every expense tagged to goalID.
// Called when a goal is deleted so the contributions survive it.
func (s *Service) DetachGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	return s.repo.DetachGoal(ctx, userID, goalID)
}
