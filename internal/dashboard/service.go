package dashboard

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asahu12/finsight/internal/expense"
	"github.com/asahu12/finsight/internal/investment"
	"github.com/asahu12/finsight/internal/user"
)

const (
	defaultWindowMonths = 6
	defaultMonthLimit   = 6
	defaultTrendMonths  = 12
	recentCount         = 5
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=dashboard

// Ledger is the read-only slice of the expense store the engine aggregates over.
type Ledger interface {
	ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error)
}

// Users resolves the identity block of a dashboard response.
type Users interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Holdings lists a user's open positions for portfolio valuation.
type Holdings interface {
	ListPositions(ctx context.Context, userID uuid.UUID) ([]*investment.Position, error)
}

// Quoter resolves a symbol to its current market price.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Service derives dashboard metrics from the raw ledger. It holds no state of
// its own: every request reads a fresh slice and runs to completion or fails
// wholesale, never returning partial results.
type Service struct {
	ledger   Ledger
	users    Users
	holdings Holdings
	quoter   Quoter
	now      func() time.Time
}

func NewService(ledger Ledger, users Users, holdings Holdings, quoter Quoter) *Service {
	return &Service{
		ledger:   ledger,
		users:    users,
		holdings: holdings,
		quoter:   quoter,
		now:      time.Now,
	}
}

// SummaryParams bounds a dashboard summary. Zero values mean defaults: the
// window ends now and starts six months earlier, and six monthly buckets are
// returned.
type SummaryParams struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Category   *expense.Category
	MonthLimit int
}

func (s *Service) Summary(ctx context.Context, params SummaryParams) (*Summary, error) {
	u, err := s.users.GetUser(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	end := now
	if params.EndDate != nil {
		end = *params.EndDate
	}

	start := end.AddDate(0, -defaultWindowMonths, 0)
	if params.StartDate != nil {
		start = *params.StartDate
	}

	monthLimit := params.MonthLimit
	if monthLimit <= 0 {
		monthLimit = defaultMonthLimit
	}

	window, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID:    params.UserID,
		StartDate: &start,
		EndDate:   &end,
		Category:  params.Category,
	})
	if err != nil {
		return nil, err
	}

	total := sumAmounts(window)

	// The preceding window has the same length and ends where this one starts.
	prevStart := start.Add(-end.Sub(start))
	previous, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID:    params.UserID,
		StartDate: &prevStart,
		EndDate:   &start,
		Category:  params.Category,
	})
	if err != nil {
		return nil, err
	}

	currentMonth, err := s.currentMonthComparison(ctx, params.UserID, now)
	if err != nil {
		return nil, err
	}

	return &Summary{
		User: UserInfo{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			JoinedAt: u.CreatedAt,
		},
		Stats: Stats{
			TotalSpent:           total,
			TransactionCount:     len(window),
			LargestExpense:       largestAmount(window),
			AverageDaily:         averageDaily(total, start, end),
			PreviousPeriodChange: changePercent(total, sumAmounts(previous)),
			FavoriteCategory:     favoriteCategory(window),
		},
		MonthlyBreakdown:   monthlyBreakdown(window, monthLimit),
		CategoryBreakdown:  categoryBreakdown(window, total),
		RecentTransactions: recentTransactions(window),
		CurrentMonth:       currentMonth,
	}, nil
}

// currentMonthComparison always compares the real current calendar month with
// the real previous one, regardless of the requested window. When the previous
// month's total is zero the change is reported as a literal 100, even when the
// current month is also zero. Callers depend on that asymmetry.
func (s *Service) currentMonthComparison(ctx context.Context, userID uuid.UUID, now time.Time) (MonthComparison, error) {
	monthStart := startOfMonth(now)

	current, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID:    userID,
		StartDate: &monthStart,
		EndDate:   &now,
	})
	if err != nil {
		return MonthComparison{}, err
	}

	prevStart := monthStart.AddDate(0, -1, 0)
	prevEnd := monthStart.Add(-time.Nanosecond)

	previous, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID:    userID,
		StartDate: &prevStart,
		EndDate:   &prevEnd,
	})
	if err != nil {
		return MonthComparison{}, err
	}

	currentTotal := sumAmounts(current)
	previousTotal := sumAmounts(previous)

	change := 100.0
	if previousTotal.IsPositive() {
		change = changePercent(currentTotal, previousTotal)
	}

	return MonthComparison{Total: currentTotal, ChangePercent: change}, nil
}

// Trends groups the trailing monthsBack months into year-month buckets sorted
// oldest first. The bucket's top category is the category of the first record
// encountered in date order, not the highest-spending one.
func (s *Service) Trends(ctx context.Context, userID uuid.UUID, monthsBack int) ([]TrendPoint, error) {
	if monthsBack <= 0 {
		monthsBack = defaultTrendMonths
	}

	now := s.now()
	start := startOfMonth(now).AddDate(0, -(monthsBack - 1), 0)

	records, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID:    userID,
		StartDate: &start,
		EndDate:   &now,
	})
	if err != nil {
		return nil, err
	}

	sortChronological(records)

	buckets := make(map[monthKey]*TrendPoint)

	var order []monthKey

	for _, e := range records {
		k := keyOf(e.Date)

		b, ok := buckets[k]
		if !ok {
			b = &TrendPoint{
				Period:      k.label(),
				Total:       decimal.Zero,
				TopCategory: e.Category,
			}
			buckets[k] = b
			order = append(order, k)
		}

		b.Total = b.Total.Add(e.Amount)
		b.Count++
	}

	sort.Slice(order, func(i, j int) bool { return order[i].before(order[j]) })

	points := make([]TrendPoint, len(order))
	for i, k := range order {
		points[i] = *buckets[k]
	}

	return points, nil
}

// Insights reports per-month and overall stats for one category over the
// trailing six months. The overall total alone is all-time.
func (s *Service) Insights(ctx context.Context, userID uuid.UUID, category expense.Category) (*CategoryInsights, error) {
	if !category.Valid() {
		return nil, expense.ErrInvalidCategory
	}

	now := s.now()
	start := now.AddDate(0, -defaultWindowMonths, 0)

	records, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID:    userID,
		StartDate: &start,
		EndDate:   &now,
		Category:  &category,
	})
	if err != nil {
		return nil, err
	}

	allTime, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID:   userID,
		Category: &category,
	})
	if err != nil {
		return nil, err
	}

	sortChronological(records)

	type bucket struct {
		key   monthKey
		total decimal.Decimal
		count int
		max   decimal.Decimal
		min   decimal.Decimal
	}

	buckets := make(map[monthKey]*bucket)

	var order []monthKey

	for _, e := range records {
		k := keyOf(e.Date)

		b, ok := buckets[k]
		if !ok {
			b = &bucket{key: k, total: decimal.Zero, max: e.Amount, min: e.Amount}
			buckets[k] = b
			order = append(order, k)
		}

		b.total = b.total.Add(e.Amount)
		b.count++

		if e.Amount.GreaterThan(b.max) {
			b.max = e.Amount
		}

		if e.Amount.LessThan(b.min) {
			b.min = e.Amount
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].before(order[j]) })

	insights := &CategoryInsights{
		Category: category,
		Overall: CategoryOverall{
			AllTimeTotal:   sumAmounts(allTime),
			AverageMonthly: decimal.Zero,
			Max:            decimal.Zero,
		},
	}

	avgSum := decimal.Zero

	for _, k := range order {
		b := buckets[k]
		avg := b.total.Div(decimal.NewFromInt(int64(b.count))).Round(2)

		insights.Months = append(insights.Months, CategoryMonth{
			Period:  k.label(),
			Total:   b.total,
			Average: avg,
			Count:   b.count,
			Max:     b.max,
			Min:     b.min,
		})

		avgSum = avgSum.Add(avg)
		insights.Overall.Count += b.count

		if b.max.GreaterThan(insights.Overall.Max) {
			insights.Overall.Max = b.max
		}
	}

	// Average of the monthly averages, with a floor-1 divisor so an empty set
	// yields 0 instead of a division failure.
	divisor := int64(len(order))
	if divisor < 1 {
		divisor = 1
	}

	insights.Overall.AverageMonthly = avgSum.Div(decimal.NewFromInt(divisor)).Round(2)

	return insights, nil
}

// QuickStats sums four windows anchored to a single captured "now": today,
// the Sunday-start week, the calendar month and yesterday.
func (s *Service) QuickStats(ctx context.Context, userID uuid.UUID) (*QuickStats, error) {
	now := s.now()

	dayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)
	yesterdayStart := dayStart.AddDate(0, 0, -1)

	// One listing covers all four windows; the earliest boundary wins.
	earliest := monthStart
	for _, t := range []time.Time{weekStart, yesterdayStart} {
		if t.Before(earliest) {
			earliest = t
		}
	}

	records, err := s.ledger.ListExpenses(ctx, expense.ListFilter{
		UserID:    userID,
		StartDate: &earliest,
		EndDate:   &now,
	})
	if err != nil {
		return nil, err
	}

	stats := &QuickStats{
		Today:     decimal.Zero,
		ThisWeek:  decimal.Zero,
		ThisMonth: decimal.Zero,
		Yesterday: decimal.Zero,
	}

	for _, e := range records {
		if !e.Date.Before(dayStart) {
			stats.Today = stats.Today.Add(e.Amount)
		}

		if !e.Date.Before(weekStart) {
			stats.ThisWeek = stats.ThisWeek.Add(e.Amount)
		}

		if !e.Date.Before(monthStart) {
			stats.ThisMonth = stats.ThisMonth.Add(e.Amount)
		}

		if !e.Date.Before(yesterdayStart) && e.Date.Before(dayStart) {
			stats.Yesterday = stats.Yesterday.Add(e.Amount)
		}
	}

	switch {
	case stats.Yesterday.IsPositive():
		stats.DailyChange = changePercent(stats.Today, stats.Yesterday)
	case stats.Today.IsPositive():
		stats.DailyChange = 100
	default:
		stats.DailyChange = 0
	}

	stats.IsIncreasing = stats.DailyChange > 0

	return stats, nil
}

// Portfolio values every open position at its live market price.
func (s *Service) Portfolio(ctx context.Context, userID uuid.UUID) (*PortfolioSummary, error) {
	positions, err := s.holdings.ListPositions(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{
		Invested:     decimal.Zero,
		CurrentValue: decimal.Zero,
		PnL:          decimal.Zero,
	}

	for _, p := range positions {
		price, err := s.quoter.Quote(ctx, p.Symbol)
		if err != nil {
			return nil, err
		}

		qty := decimal.NewFromInt(p.Quantity)
		invested := p.AvgBuyPrice.Mul(qty)
		current := price.Mul(qty)
		pnl := current.Sub(invested)

		pnlPercent := 0.0
		if invested.IsPositive() {
			ratio, _ := pnl.Div(invested).Float64()
			pnlPercent = round2(ratio * 100)
		}

		summary.Holdings = append(summary.Holdings, Holding{
			Position:     p,
			CurrentPrice: price,
			Invested:     invested,
			CurrentValue: current,
			PnL:          pnl,
			PnLPercent:   pnlPercent,
		})

		summary.Invested = summary.Invested.Add(invested)
		summary.CurrentValue = summary.CurrentValue.Add(current)
		summary.PnL = summary.PnL.Add(pnl)
	}

	if summary.Invested.IsPositive() {
		ratio, _ := summary.PnL.Div(summary.Invested).Float64()
		summary.PnLPercent = round2(ratio * 100)
	}

	return summary, nil
}

func sumAmounts(records []*expense.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range records {
		total = total.Add(e.Amount)
	}

	return total
}

func largestAmount(records []*expense.Expense) decimal.Decimal {
	largest := decimal.Zero
	for _, e := range records {
		if e.Amount.GreaterThan(largest) {
			largest = e.Amount
		}
	}

	return largest
}

// averageDaily divides the window total by the whole days it spans, zero when
// the window spans none.
func averageDaily(total decimal.Decimal, start, end time.Time) decimal.Decimal {
	days := wholeDays(start, end)
	if days == 0 {
		return decimal.Zero
	}

	return total.Div(decimal.NewFromInt(int64(days))).Round(2)
}

// changePercent is (current-previous)/previous*100 when previous is positive,
// zero otherwise.
func changePercent(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}

	ratio, _ := current.Sub(previous).Div(previous).Float64()

	return round2(ratio * 100)
}

func favoriteCategory(records []*expense.Expense) string {
	if len(records) == 0 {
		return "None"
	}

	totals := make(map[expense.Category]decimal.Decimal)
	for _, e := range records {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	var favorite expense.Category

	best := decimal.NewFromInt(-1)

	for _, c := range expense.Categories() {
		if t, ok := totals[c]; ok && t.GreaterThan(best) {
			favorite = c
			best = t
		}
	}

	return string(favorite)
}

func monthlyBreakdown(records []*expense.Expense, limit int) []MonthlyBucket {
	buckets := make(map[monthKey]*MonthlyBucket)

	var order []monthKey

	for _, e := range records {
		k := keyOf(e.Date)

		b, ok := buckets[k]
		if !ok {
			b = &MonthlyBucket{
				Year:  k.Year,
				Month: k.Month,
				Label: time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
				Total: decimal.Zero,
			}
			buckets[k] = b
			order = append(order, k)
		}

		b.Total = b.Total.Add(e.Amount)
		b.Count++
	}

	// Most recent month first, capped at limit.
	sort.Slice(order, func(i, j int) bool { return order[j].before(order[i]) })

	if len(order) > limit {
		order = order[:limit]
	}

	out := make([]MonthlyBucket, len(order))
	for i, k := range order {
		out[i] = *buckets[k]
	}

	return out
}

func categoryBreakdown(records []*expense.Expense, total decimal.Decimal) []CategoryStat {
	stats := make(map[expense.Category]*CategoryStat)

	for _, e := range records {
		st, ok := stats[e.Category]
		if !ok {
			st = &CategoryStat{Category: e.Category, Amount: decimal.Zero}
			stats[e.Category] = st
		}

		st.Amount = st.Amount.Add(e.Amount)
		st.Count++
	}

	var out []CategoryStat

	for _, c := range expense.Categories() {
		st, ok := stats[c]
		if !ok {
			continue
		}

		if total.IsPositive() {
			ratio, _ := st.Amount.Div(total).Float64()
			st.Percentage = round2(ratio * 100)
		}

		out = append(out, *st)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })

	return out
}

// recentTransactions returns the newest five records, by date then creation.
func recentTransactions(records []*expense.Expense) []RecentTransaction {
	sorted := make([]*expense.Expense, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}

		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if len(sorted) > recentCount {
		sorted = sorted[:recentCount]
	}

	out := make([]RecentTransaction, len(sorted))
	for i, e := range sorted {
		description := e.Description
		if description == "" {
			description = expense.DefaultDescription
		}

		out[i] = RecentTransaction{
			ID:          e.ID,
			Amount:      e.Amount,
			Category:    e.Category,
			Description: description,
			Date:        e.Date,
		}
	}

	return out
}

func sortChronological(records []*expense.Expense) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
