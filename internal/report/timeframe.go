package report

import (
	"fmt"
	"strings"
	"time"

	"kioskanalyzer/internal/domain"
)

func ParseTimeframe(raw string) (domain.Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return domain.TimeframeAll, nil
	case "monthly", "month":
		return domain.TimeframeMonthly, nil
	case "weekly", "week":
		return domain.TimeframeWeekly, nil
	case "daily", "day", "today":
		return domain.TimeframeDaily, nil
	default:
		return domain.TimeframeAll, fmt.Errorf("unknown timeframe %q", raw)
	}
}

// WindowStart returns the inclusive start of the reporting window in now's
// location. Weeks start on Monday. The second result is false for
// TimeframeAll, which has no bound.
func WindowStart(tf domain.Timeframe, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	loc := now.Location()

	switch tf {
	case domain.TimeframeDaily:
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	case domain.TimeframeWeekly:
		sinceMonday := (int(now.Weekday()) + 6) % 7
		return time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc), true
	case domain.TimeframeMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc), true
	default:
		return time.Time{}, false
	}
}

// InWindow reports whether a transaction stamped ts belongs to the window.
// Undated transactions only count towards the unbounded report.
func InWindow(tf domain.Timeframe, now time.Time, ts *time.Time) bool {
	start, bounded := WindowStart(tf, now)
	if !bounded {
		return true
	}
	if ts == nil {
		return false
	}
	return !ts.Before(start)
}

// ProrationDivisor scales monthly fixed costs to the window. A month is
// taken as 30 days or 4 weeks; this is an approximation, not a calendar
// proration.
func ProrationDivisor(tf domain.Timeframe) float64 {
	switch tf {
	case domain.TimeframeDaily:
		return 30
	case domain.TimeframeWeekly:
		return 4
	default:
		return 1
	}
}

func FilterPurchases(tf domain.Timeframe, now time.Time, purchases []domain.Purchase) []domain.Purchase {
	out := make([]domain.Purchase, 0, len(purchases))
	for _, p := range purchases {
		if InWindow(tf, now, p.Timestamp) {
			out = append(out, p)
		}
	}
	return out
}

func FilterSales(tf domain.Timeframe, now time.Time, sales []domain.Sale) []domain.Sale {
	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if InWindow(tf, now, s.Timestamp) {
			out = append(out, s)
		}
	}
	return out
}
