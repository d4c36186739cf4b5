package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asahu12/finsight/internal/expense"
	"github.com/asahu12/finsight/internal/investment"
)

// Summary is the full dashboard payload for one user.
type Summary struct {
	User               UserInfo
	Stats              Stats
	MonthlyBreakdown   []MonthlyBucket
	CategoryBreakdown  []CategoryStat
	RecentTransactions []RecentTransaction
	CurrentMonth       MonthComparison
}

type UserInfo struct {
	ID       uuid.UUID
	Name     string
	Email    string
	JoinedAt time.Time
}

type Stats struct {
	TotalSpent           decimal.Decimal
	TransactionCount     int
	LargestExpense       decimal.Decimal
	AverageDaily         decimal.Decimal
	PreviousPeriodChange float64
	FavoriteCategory     string
}

type MonthlyBucket struct {
	Year  int
	Month time.Month
	Label string
	Total decimal.Decimal
	Count int
}

type CategoryStat struct {
	Category   expense.Category
	Amount     decimal.Decimal
	Count      int
	Percentage float64
}

type RecentTransaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Category    expense.Category
	Description string
	Date        time.Time
}

// MonthComparison reports the real current calendar month against the real
// previous one, independent of any requested window.
type MonthComparison struct {
	Total         decimal.Decimal
	ChangePercent float64
}

// TrendPoint is one year-month bucket in a spending trend series.
type TrendPoint struct {
	Period      string
	Total       decimal.Decimal
	Count       int
	TopCategory expense.Category
}

// CategoryInsights summarises one category over the trailing six months.
type CategoryInsights struct {
	Category expense.Category
	Months   []CategoryMonth
	Overall  CategoryOverall
}

type CategoryMonth struct {
	Period  string
	Total   decimal.Decimal
	Average decimal.Decimal
	Count   int
	Max     decimal.Decimal
	Min     decimal.Decimal
}

type CategoryOverall struct {
	AllTimeTotal   decimal.Decimal
	AverageMonthly decimal.Decimal
	Max            decimal.Decimal
	Count          int
}

// QuickStats are the four "now"-anchored windows plus the day-over-day change.
type QuickStats struct {
	Today        decimal.Decimal
	ThisWeek     decimal.Decimal
	ThisMonth    decimal.Decimal
	Yesterday    decimal.Decimal
	DailyChange  float64
	IsIncreasing bool
}

// PortfolioSummary values open positions at live market prices.
type PortfolioSummary struct {
	Holdings     []Holding
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	PnL          decimal.Decimal
	PnLPercent   float64
}

type Holding struct {
	Position     *investment.Position
	CurrentPrice decimal.Decimal
	Invested     decimal.Decimal
	CurrentValue decimal.Decimal
	PnL          decimal.Decimal
	PnLPercent   float64
}
