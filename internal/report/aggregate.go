package report

import (
	"math"
	"time"

	"kioskanalyzer/internal/domain"
	"kioskanalyzer/internal/inventory"
)

// Totals holds the whole-window metrics. Values are not rounded.
type Totals struct {
	TotalSales     float64
	TotalPurchases float64
	InventoryValue float64
	Rent           float64
	OtherExpenses  float64
	COGS           float64
	GrossProfit    float64
	NetProfit      float64
}

// Aggregate derives the metrics from already filtered transactions and
// already prorated fixed costs. Every purchase in the window counts as cost
// of goods sold for that window; purchases are not matched to sales.
func Aggregate(purchases []domain.Purchase, sales []domain.Sale, rent, otherExpenses, inventoryValue float64) Totals {
	t := Totals{
		InventoryValue: finite(inventoryValue),
		Rent:           finite(rent),
		OtherExpenses:  finite(otherExpenses),
	}
	for _, p := range purchases {
		t.TotalPurchases += p.TotalCost
	}
	for _, s := range sales {
		t.TotalSales += s.Revenue
	}
	t.TotalPurchases = finite(t.TotalPurchases)
	t.TotalSales = finite(t.TotalSales)
	t.COGS = t.TotalPurchases
	t.GrossProfit = finite(t.TotalSales - t.COGS)
	t.NetProfit = finite(t.GrossProfit - t.Rent - t.OtherExpenses)
	return t
}

func ExpensesTotal(expenses []domain.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}
	return finite(total)
}

// finite replaces a result that overflowed float64 with 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Build computes the report for doc over the window tf ending at now. It
// is a pure function of its arguments.
func Build(doc domain.Document, tf domain.Timeframe, now time.Time) domain.Report {
	purchases := FilterPurchases(tf, now, doc.Purchases)
	sales := FilterSales(tf, now, doc.Sales)

	divisor := ProrationDivisor(tf)
	totals := Aggregate(
		purchases,
		sales,
		doc.Rent/divisor,
		ExpensesTotal(doc.OtherExpenses)/divisor,
		inventory.TotalValue(doc.Inventory),
	)
	title, series := Series(tf, purchases, sales, totals)

	return domain.Report{
		Timeframe:      tf,
		GeneratedAt:    now,
		TotalSales:     totals.TotalSales,
		TotalPurchases: totals.TotalPurchases,
		InventoryValue: totals.InventoryValue,
		Rent:           totals.Rent,
		OtherExpenses:  totals.OtherExpenses,
		COGS:           totals.COGS,
		GrossProfit:    totals.GrossProfit,
		NetProfit:      totals.NetProfit,
		ChartTitle:     title,
		ChartSeries:    series,
	}
}
