package goal

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/asahu12/finsight/internal/expense"
)

func contribution(amount int64, date time.Time) *expense.Expense {
	return &expense.Expense{
		ID:       uuid.New(),
		Amount:   decimal.NewFromInt(amount),
		Category: expense.CategoryInvestments,
		Date:     date,
	}
}

func TestComputeProgress(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	g := &Goal{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Title:        "Emergency Fund",
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     now.AddDate(0, 0, 30),
	}

	tests := []struct {
		name          string
		deadline      time.Time
		contributions []*expense.Expense
		wantCurrent   int64
		wantRemaining int64
		wantPct       float64
		wantContains  string
	}{
		{
			name:          "NoContributions",
			deadline:      now.AddDate(0, 0, 30),
			contributions: nil,
			wantCurrent:   0,
			wantRemaining: 1000,
			wantPct:       0,
			wantContains:  "haven't saved",
		},
		{
			name:     "Achieved",
			deadline: now.AddDate(0, 0, 30),
			contributions: []*expense.Expense{
				contribution(600, now.AddDate(0, 0, -20)),
				contribution(400, now.AddDate(0, 0, -10)),
			},
			wantCurrent:   1000,
			wantRemaining: 0,
			wantPct:       100,
			wantContains:  "achieved",
		},
		{
			name:     "OverTargetClampsTo100",
			deadline: now.AddDate(0, 0, 30),
			contributions: []*expense.Expense{
				contribution(1500, now.AddDate(0, 0, -5)),
			},
			wantCurrent:   1500,
			wantRemaining: 0,
			wantPct:       100,
			wantContains:  "achieved",
		},
		{
			name:     "DeadlinePassed",
			deadline: now.AddDate(0, 0, -1),
			contributions: []*expense.Expense{
				contribution(500, now.AddDate(0, 0, -40)),
			},
			wantCurrent:   500,
			wantRemaining: 500,
			wantPct:       50,
			wantContains:  "short by ₹500",
		},
		{
			name:     "AheadOfPace",
			deadline: now.AddDate(0, 0, 100),
			contributions: []*expense.Expense{
				// 900 saved in 10 days: 90/day, 100 remaining, ~2 days to go.
				contribution(900, now.AddDate(0, 0, -10)),
			},
			wantCurrent:   900,
			wantRemaining: 100,
			wantPct:       90,
			wantContains:  "days early",
		},
		{
			name:     "NeedsWeeklyTopUp",
			deadline: now.AddDate(0, 0, 10),
			contributions: []*expense.Expense{
				// 100 saved in 100 days: 1/day. Required: 900/10 = 90/day.
				contribution(100, now.AddDate(0, 0, -100)),
			},
			wantCurrent:   100,
			wantRemaining: 900,
			wantPct:       10,
			wantContains:  "per week",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := *g
			tg.Deadline = tt.deadline

			p := computeProgress(&tg, tt.contributions, now)

			assert.True(t, p.CurrentAmount.Equal(decimal.NewFromInt(tt.wantCurrent)),
				"current = %s", p.CurrentAmount)
			assert.True(t, p.RemainingAmount.Equal(decimal.NewFromInt(tt.wantRemaining)),
				"remaining = %s", p.RemainingAmount)
			assert.InDelta(t, tt.wantPct, p.ProgressPercentage, 0.001)
			assert.Contains(t, p.Insight, tt.wantContains)
		})
	}
}

func TestComputeProgress_WeeklyTopUpAmount(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	g := &Goal{
		Title:        "Bike",
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     now.AddDate(0, 0, 10),
	}

	// avg rate 1/day, required rate 90/day: top-up = (90-1)*7 = 623.
	p := computeProgress(g, []*expense.Expense{
		contribution(100, now.AddDate(0, 0, -100)),
	}, now)

	assert.Contains(t, p.Insight, "₹623")
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysBetween(base, base))
	assert.Equal(t, 1, daysBetween(base, base.AddDate(0, 0, 1)))
	assert.Equal(t, -1, daysBetween(base, base.AddDate(0, 0, -1)))
	// Partial days truncate.
	assert.Equal(t, 0, daysBetween(base, base.Add(23*time.Hour)))
}
