package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDescription is stored when a client omits the description.
const DefaultDescription = "No description"

// Category classifies an expense. The set is closed: anything outside it is
// rejected before a query is built from it.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryTravel         Category = "Travel"
	CategoryInvestments    Category = "Investments"
	CategoryOther          Category = "Other"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransportation,
		CategoryShopping,
		CategoryBills,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryEducation,
		CategoryTravel,
		CategoryInvestments,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}

	return false
}

// Expense represents a single ledger entry owned by one user.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    Category
	Description string
	Date        time.Time
	GoalID      *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
