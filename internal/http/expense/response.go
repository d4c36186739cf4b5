package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asahu12/finsight/internal/expense"
)

type expenseResponse struct {
	ID          uuid.UUID        `json:"id"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    expense.Category `json:"category"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	GoalID      *uuid.UUID       `json:"goal_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
		GoalID:      e.GoalID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toResponseList(es []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(es))
	for i, e := range es {
		resp[i] = toResponse(e)
	}

	return resp
}
