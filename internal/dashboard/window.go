package dashboard

import "time"

// Window boundary helpers. Each is a pure function of a single captured
// instant: boundaries are never derived by mutating a shared value, so one
// computation can't corrupt the next.

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the most recent Sunday at midnight.
func startOfWeek(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// monthKey identifies a calendar month bucket.
type monthKey struct {
	Year  int
	Month time.Month
}

func keyOf(t time.Time) monthKey {
	return monthKey{Year: t.Year(), Month: t.Month()}
}

// before orders month keys chronologically.
func (k monthKey) before(other monthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}

	return k.Month < other.Month
}

// label formats the key as zero-padded YYYY-MM.
func (k monthKey) label() string {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// wholeDays counts full days between start and end, truncating a partial day.
func wholeDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}

	return int(end.Sub(start).Hours() / 24)
}
