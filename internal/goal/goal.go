package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal is a savings target. The saved amount is never stored on the goal
// itself: it is derived from the ledger entries tagged to it.
type Goal struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	TargetAmount decimal.Decimal
	Deadline     time.Time
	Description  string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Progress is the derived state of a goal at a point in time.
type Progress struct {
	CurrentAmount      decimal.Decimal
	RemainingAmount    decimal.Decimal
	ProgressPercentage float64
	Insight            string
}
