package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an account holder. MonthlyBudget and StartingBalance are read-only
// inputs to the dashboard; the analytics code never mutates them.
type User struct {
	ID              uuid.UUID
	Name            string
	Email           string
	PasswordHash    string
	MonthlyBudget   decimal.Decimal
	StartingBalance decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
