package goal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asahu12/finsight/internal/expense"
)

var (
	ErrNotFound        = errors.New("goal not found")
	ErrInvalidTarget   = errors.New("target amount must be at least 1")
	ErrMissingTitle    = errors.New("title is required")
	ErrMissingDeadline = errors.New("deadline is required")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) error
}

// Ledger is the slice of the expense store the goal engine needs: listing the
// contributions tagged to a goal and detaching them when the goal goes away.
type Ledger interface {
	ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
	DetachGoal(ctx context.Context, userID, goalID uuid.UUID) error
}

type Service struct {
	repo   Repository
	ledger Ledger
	now    func() time.Time
}

func NewService(repo Repository, ledger Ledger) *Service {
	return &Service{repo: repo, ledger: ledger, now: time.Now}
}

type CreateParams struct {
	UserID       uuid.UUID
	Title        string
	TargetAmount decimal.Decimal
	Deadline     time.Time
	Description  string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrMissingTitle
	}

	if params.Deadline.IsZero() {
		return nil, ErrMissingDeadline
	}

	if params.TargetAmount.LessThan(decimal.NewFromInt(1)) {
		return nil, ErrInvalidTarget
	}

	g := &Goal{
		UserID:       params.UserID,
		Title:        params.Title,
		TargetAmount: params.TargetAmount,
		Deadline:     params.Deadline,
		Description:  params.Description,
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

// Delete detaches the goal's expenses first so contributions outlive the goal,
// then removes the goal itself. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.repo.GetGoal(ctx, userID, id); err != nil {
		return err
	}

	if err := s.ledger.DetachGoal(ctx, userID, id); err != nil {
		return err
	}

	return s.repo.DeleteGoal(ctx, userID, id)
}

// ComputeProgress derives the saved amount, the remaining amount, a clamped
// 0-100 progress percentage and a pacing insight for one goal.
func (s *Service) ComputeProgress(ctx context.Context, g *Goal) (*Progress, error) {
	contributions, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID: g.UserID,
		GoalID: &g.ID,
	})
	if err != nil {
		return nil, err
	}

	return computeProgress(g, contributions, s.now()), nil
}

func computeProgress(g *Goal, contributions []*expense.Expense, now time.Time) *Progress {
	current := decimal.Zero
	firstContribution := now

	for _, c := range contributions {
		current = current.Add(c.Amount)
		if c.Date.Before(firstContribution) {
			firstContribution = c.Date
		}
	}

	remaining := g.TargetAmount.Sub(current)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	pct := 0.0
	if g.TargetAmount.IsPositive() {
		ratio, _ := current.Div(g.TargetAmount).Float64()
		pct = math.Min(math.Max(ratio*100, 0), 100)
	}

	return &Progress{
		CurrentAmount:      current,
		RemainingAmount:    remaining,
		ProgressPercentage: pct,
		Insight:            insight(g, current, remaining, firstContribution, now),
	}
}

// insight picks a pacing message. The rules are evaluated strictly in order;
// the first that applies wins.
func insight(g *Goal, current, remaining decimal.Decimal, firstContribution, now time.Time) string {
	if current.IsZero() {
		return fmt.Sprintf("You haven't saved towards %q yet. Add your first contribution to get started.", g.Title)
	}

	if remaining.IsZero() {
		return fmt.Sprintf("Congratulations! You've achieved your goal %q.", g.Title)
	}

	daysLeft := daysBetween(now, g.Deadline)
	if daysLeft <= 0 {
		return fmt.Sprintf("The deadline for %q has passed. You were short by ₹%s.", g.Title, remaining.StringFixed(0))
	}

	// Average saved per day since the first contribution; a goal saved into
	// today still counts one elapsed day.
	elapsed := daysBetween(firstContribution, now)
	if elapsed < 1 {
		elapsed = 1
	}

	avgRate := current.Div(decimal.NewFromInt(int64(elapsed)))

	if avgRate.IsPositive() {
		projectedDays := remaining.Div(avgRate)
		if projectedDays.LessThan(decimal.NewFromInt(int64(daysLeft))) {
			early := int64(daysLeft) - projectedDays.Ceil().IntPart()

			return fmt.Sprintf("You're on pace to reach %q about %d days early. Keep it up!", g.Title, early)
		}
	}

	requiredRate := remaining.Div(decimal.NewFromInt(int64(daysLeft)))
	if requiredRate.GreaterThan(avgRate) {
		weeklyTopUp := requiredRate.Sub(avgRate).Mul(decimal.NewFromInt(7)).Ceil()

		return fmt.Sprintf("To reach %q on time, save about ₹%s more per week.", g.Title, weeklyTopUp.StringFixed(0))
	}

	return fmt.Sprintf("You're on track to reach %q by the deadline.", g.Title)
}

// daysBetween counts whole days from a to b, truncating partial days.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
