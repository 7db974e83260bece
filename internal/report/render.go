package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"kioskanalyzer/internal/domain"
)

type Headings struct {
	Title        string
	RentLabel    string
	ExpenseLabel string
}

func HeadingsFor(tf domain.Timeframe) Headings {
	switch tf {
	case domain.TimeframeMonthly:
		return Headings{"This Month's Report", "Monthly Rent", "Total Other Monthly Expenses"}
	case domain.TimeframeWeekly:
		return Headings{"This Week's Report", "Prorated Weekly Rent", "Prorated Other Expenses"}
	case domain.TimeframeDaily:
		return Headings{"Today's Report", "Prorated Daily Rent", "Prorated Other Expenses"}
	default:
		return Headings{"Operational Analysis Report", "Monthly Rent", "Total Other Monthly Expenses"}
	}
}

func ExportFilename(tf domain.Timeframe, now time.Time) string {
	return fmt.Sprintf("Kiosk-Report-%s-%s", tf, now.Format("2006-01-02"))
}

// Markdown renders the report as a GitHub-flavoured Markdown document.
func Markdown(r domain.Report, currency string) string {
	h := HeadingsFor(r.Timeframe)
	amount := func(v float64) string { return FormatAmount(v, currency) }

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", h.Title)
	fmt.Fprintf(&b, "_Generated %s_\n\n", r.GeneratedAt.Format("Jan 2, 2006 15:04"))

	b.WriteString("| Metric | Amount |\n|---|---:|\n")
	for _, row := range []struct {
		label string
		value float64
	}{
		{"Total Sales", r.TotalSales},
		{"Total Purchases", r.TotalPurchases},
		{"Inventory Value", r.InventoryValue},
		{h.RentLabel, r.Rent},
		{h.ExpenseLabel, r.OtherExpenses},
		{"Cost of Goods Sold", r.COGS},
		{"Gross Profit", r.GrossProfit},
		{"Net Profit", r.NetProfit},
	} {
		fmt.Fprintf(&b, "| %s | %s |\n", row.label, amount(row.value))
	}

	fmt.Fprintf(&b, "\nGross Profit: %s - %s = **%s**\n\n", amount(r.TotalSales), amount(r.COGS), amount(r.GrossProfit))
	fmt.Fprintf(&b, "Net Profit: %s - (%s + %s) = **%s**\n\n", amount(r.GrossProfit), amount(r.Rent), amount(r.OtherExpenses), amount(r.NetProfit))

	fmt.Fprintf(&b, "## %s\n\n", r.ChartTitle)
	if len(r.ChartSeries) == 0 {
		b.WriteString("No activity in this period.\n")
		return b.String()
	}
	b.WriteString("| Day | Sales | Purchases | Gross Profit | Net Profit |\n|---|---:|---:|---:|---:|\n")
	for _, p := range r.ChartSeries {
		net := "-"
		if p.NetProfit != nil {
			net = amount(*p.NetProfit)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", p.Label, amount(p.Sales), amount(p.Purchases), amount(p.GrossProfit), net)
	}
	return b.String()
}

// CSV renders the report as section,key,value rows with unrounded values.
func CSV(r domain.Report) string {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	lines := []string{
		"section,key,value",
		fmt.Sprintf("summary,timeframe,%s", r.Timeframe),
		fmt.Sprintf("summary,generated_at,%s", r.GeneratedAt.Format(time.RFC3339)),
		fmt.Sprintf("summary,total_sales,%s", num(r.TotalSales)),
		fmt.Sprintf("summary,total_purchases,%s", num(r.TotalPurchases)),
		fmt.Sprintf("summary,inventory_value,%s", num(r.InventoryValue)),
		fmt.Sprintf("summary,rent,%s", num(r.Rent)),
		fmt.Sprintf("summary,other_expenses,%s", num(r.OtherExpenses)),
		fmt.Sprintf("summary,cogs,%s", num(r.COGS)),
		fmt.Sprintf("summary,gross_profit,%s", num(r.GrossProfit)),
		fmt.Sprintf("summary,net_profit,%s", num(r.NetProfit)),
	}
	for _, p := range r.ChartSeries {
		lines = append(lines, fmt.Sprintf("series,%s_sales,%s", p.Label, num(p.Sales)))
		lines = append(lines, fmt.Sprintf("series,%s_purchases,%s", p.Label, num(p.Purchases)))
		lines = append(lines, fmt.Sprintf("series,%s_gross_profit,%s", p.Label, num(p.GrossProfit)))
		if p.NetProfit != nil {
			lines = append(lines, fmt.Sprintf("series,%s_net_profit,%s", p.Label, num(*p.NetProfit)))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

var markdownToHTML = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders a printable page from the Markdown report. Raw HTML in the
// source is dropped by goldmark's default renderer.
func HTML(r domain.Report, currency string) (string, error) {
	var body bytes.Buffer
	if err := markdownToHTML.Convert([]byte(Markdown(r, currency)), &body); err != nil {
		return "", err
	}

	var page bytes.Buffer
	page.WriteString(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>` + ExportFilename(r.Timeframe, r.GeneratedAt) + `</title>
  <style>
    body { font-family: sans-serif; margin: 24px; }
    table { width: 100%; border-collapse: collapse; margin-top: 8px; }
    th, td { border: 1px solid #ddd; padding: 6px; font-size: 13px; }
  </style>
</head>
<body>
`)
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}
