package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asahu12/finsight/internal/dashboard"
	"github.com/asahu12/finsight/internal/expense"
)

type summaryResponse struct {
	User               userResponse        `json:"user"`
	Stats              statsResponse       `json:"stats"`
	MonthlyBreakdown   []monthlyBucket     `json:"monthly_breakdown"`
	CategoryBreakdown  []categoryStat      `json:"category_breakdown"`
	RecentTransactions []recentTransaction `json:"recent_transactions"`
	CurrentMonth       monthComparison     `json:"current_month"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

type statsResponse struct {
	TotalSpent           decimal.Decimal `json:"total_spent"`
	TransactionCount     int             `json:"transaction_count"`
	LargestExpense       decimal.Decimal `json:"largest_expense"`
	AverageDaily         decimal.Decimal `json:"average_daily"`
	PreviousPeriodChange float64         `json:"previous_period_change"`
	FavoriteCategory     string          `json:"favorite_category"`
}

type monthlyBucket struct {
	Label string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type categoryStat struct {
	Category   expense.Category `json:"category"`
	Amount     decimal.Decimal  `json:"amount"`
	Count      int              `json:"count"`
	Percentage float64          `json:"percentage"`
}

type recentTransaction struct {
	ID          uuid.UUID        `json:"id"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    expense.Category `json:"category"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
}

type monthComparison struct {
	Total         decimal.Decimal `json:"total"`
	ChangePercent float64         `json:"change_percent"`
}

func toSummaryResponse(s *dashboard.Summary) summaryResponse {
	resp := summaryResponse{
		User: userResponse{
			ID:       s.User.ID,
			Name:     s.User.Name,
			Email:    s.User.Email,
			JoinedAt: s.User.JoinedAt,
		},
		Stats: statsResponse{
			TotalSpent:           s.Stats.TotalSpent,
			TransactionCount:     s.Stats.TransactionCount,
			LargestExpense:       s.Stats.LargestExpense,
			AverageDaily:         s.Stats.AverageDaily,
			PreviousPeriodChange: s.Stats.PreviousPeriodChange,
			FavoriteCategory:     s.Stats.FavoriteCategory,
		},
		MonthlyBreakdown:   make([]monthlyBucket, 0, len(s.MonthlyBreakdown)),
		CategoryBreakdown:  make([]categoryStat, 0, len(s.CategoryBreakdown)),
		RecentTransactions: make([]recentTransaction, 0, len(s.RecentTransactions)),
		CurrentMonth: monthComparison{
			Total:         s.CurrentMonth.Total,
			ChangePercent: s.CurrentMonth.ChangePercent,
		},
	}

	for _, b := range s.MonthlyBreakdown {
		resp.MonthlyBreakdown = append(resp.MonthlyBreakdown, monthlyBucket{
			Label: b.Label,
			Total: b.Total,
			Count: b.Count,
		})
	}

	for _, c := range s.CategoryBreakdown {
		resp.CategoryBreakdown = append(resp.CategoryBreakdown, categoryStat{
			Category:   c.Category,
			Amount:     c.Amount,
			Count:      c.Count,
			Percentage: c.Percentage,
		})
	}

	for _, tx := range s.RecentTransactions {
		resp.RecentTransactions = append(resp.RecentTransactions, recentTransaction{
			ID:          tx.ID,
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date,
		})
	}

	return resp
}

type trendPoint struct {
	Period      string           `json:"period"`
	Total       decimal.Decimal  `json:"total"`
	Count       int              `json:"count"`
	TopCategory expense.Category `json:"top_category"`
}

func toTrendResponse(points []dashboard.TrendPoint) []trendPoint {
	resp := make([]trendPoint, len(points))
	for i, p := range points {
		resp[i] = trendPoint{
			Period:      p.Period,
			Total:       p.Total,
			Count:       p.Count,
			TopCategory: p.TopCategory,
		}
	}

	return resp
}

type categoryInsights struct {
	Category expense.Category `json:"category"`
	Months   []categoryMonth  `json:"months"`
	Overall  categoryOverall  `json:"overall"`
}

type categoryMonth struct {
	Period  string          `json:"period"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
	Max     decimal.Decimal `json:"max"`
	Min     decimal.Decimal `json:"min"`
}

type categoryOverall struct {
	AllTimeTotal   decimal.Decimal `json:"all_time_total"`
	AverageMonthly decimal.Decimal `json:"average_monthly"`
	Max            decimal.Decimal `json:"max"`
	Count          int             `json:"count"`
}

func toInsightsResponse(in *dashboard.CategoryInsights) categoryInsights {
	resp := categoryInsights{
		Category: in.Category,
		Months:   make([]categoryMonth, 0, len(in.Months)),
		Overall: categoryOverall{
			AllTimeTotal:   in.Overall.AllTimeTotal,
			AverageMonthly: in.Overall.AverageMonthly,
			Max:            in.Overall.Max,
			Count:          in.Overall.Count,
		},
	}

	for _, m := range in.Months {
		resp.Months = append(resp.Months, categoryMonth{
			Period:  m.Period,
			Total:   m.Total,
			Average: m.Average,
			Count:   m.Count,
			Max:     m.Max,
			Min:     m.Min,
		})
	}

	return resp
}

type quickStats struct {
	Today        decimal.Decimal `json:"today"`
	ThisWeek     decimal.Decimal `json:"this_week"`
	ThisMonth    decimal.Decimal `json:"this_month"`
	Yesterday    decimal.Decimal `json:"yesterday"`
	DailyChange  float64         `json:"daily_change"`
	IsIncreasing bool            `json:"is_increasing"`
}

func toQuickStatsResponse(qs *dashboard.QuickStats) quickStats {
	return quickStats{
		Today:        qs.Today,
		ThisWeek:     qs.ThisWeek,
		ThisMonth:    qs.ThisMonth,
		Yesterday:    qs.Yesterday,
		DailyChange:  qs.DailyChange,
		IsIncreasing: qs.IsIncreasing,
	}
}

type portfolioSummary struct {
	Holdings     []holding       `json:"holdings"`
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"current_value"`
	PnL          decimal.Decimal `json:"pnl"`
	PnLPercent   float64         `json:"pnl_percent"`
}

type holding struct {
	ID           uuid.UUID       `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Quantity     int64           `json:"quantity"`
	AvgBuyPrice  decimal.Decimal `json:"avg_buy_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"current_value"`
	PnL          decimal.Decimal `json:"pnl"`
	PnLPercent   float64         `json:"pnl_percent"`
}

func toPortfolioResponse(p *dashboard.PortfolioSummary) portfolioSummary {
	resp := portfolioSummary{
		Holdings:     make([]holding, 0, len(p.Holdings)),
		Invested:     p.Invested,
		CurrentValue: p.CurrentValue,
		PnL:          p.PnL,
		PnLPercent:   p.PnLPercent,
	}

	for _, h := range p.Holdings {
		resp.Holdings = append(resp.Holdings, holding{
			ID:           h.Position.ID,
			Symbol:       h.Position.Symbol,
			Name:         h.Position.Name,
			Quantity:     h.Position.Quantity,
			AvgBuyPrice:  h.Position.AvgBuyPrice,
			CurrentPrice: h.CurrentPrice,
			Invested:     h.Invested,
			CurrentValue: h.CurrentValue,
			PnL:          h.PnL,
			PnLPercent:   h.PnLPercent,
		})
	}

	return resp
}
