package report

import (
	"sort"
	"time"

	"kioskanalyzer/internal/domain"
)

const dayKeyFormat = "2006-01-02"

type dayBucket struct {
	sales     float64
	purchases float64
}

// Series buckets the filtered transactions for charting. Weekly and
// monthly windows get one point per active UTC calendar day; days without
// activity are left out. All and daily windows get a single point carrying
// net profit, which has no per-day meaning.
func Series(tf domain.Timeframe, purchases []domain.Purchase, sales []domain.Sale, totals Totals) (string, []domain.ChartPoint) {
	switch tf {
	case domain.TimeframeWeekly:
		return "Weekly Progress", dailyPoints(purchases, sales, weekdayLabel)
	case domain.TimeframeMonthly:
		return "Monthly Progress", dailyPoints(purchases, sales, shortDateLabel)
	}

	title, label := "Overall Summary", "Summary"
	if tf == domain.TimeframeDaily {
		title, label = "Today's Summary", "Today's Summary"
	}
	net := totals.NetProfit
	return title, []domain.ChartPoint{{
		Label:       label,
		Sales:       totals.TotalSales,
		Purchases:   totals.TotalPurchases,
		GrossProfit: totals.GrossProfit,
		NetProfit:   &net,
	}}
}

func dailyPoints(purchases []domain.Purchase, sales []domain.Sale, label func(time.Time) string) []domain.ChartPoint {
	buckets := make(map[string]*dayBucket)
	bucket := func(ts time.Time) *dayBucket {
		key := ts.UTC().Format(dayKeyFormat)
		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{}
			buckets[key] = b
		}
		return b
	}

	for _, s := range sales {
		if s.Timestamp != nil {
			bucket(*s.Timestamp).sales += s.Revenue
		}
	}
	for _, p := range purchases {
		if p.Timestamp != nil {
			bucket(*p.Timestamp).purchases += p.TotalCost
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	points := make([]domain.ChartPoint, 0, len(keys))
	for _, key := range keys {
		day, _ := time.Parse(dayKeyFormat, key)
		b := buckets[key]
		sales, purchases := finite(b.sales), finite(b.purchases)
		points = append(points, domain.ChartPoint{
			Label:       label(day),
			Sales:       sales,
			Purchases:   purchases,
			GrossProfit: finite(sales - purchases),
		})
	}
	return points
}

func weekdayLabel(day time.Time) string {
	return day.Weekday().String()[:3]
}

func shortDateLabel(day time.Time) string {
	return day.Format("Jan 2")
}
