package domain

import "time"

// Field names mirror the persisted document so blobs written by earlier
// releases decode without a rename step.

type InventoryItem struct {
	Name        string     `json:"item"`
	Quantity    float64    `json:"quantity"`
	CostPerUnit float64    `json:"costPerUnit"`
	DateAdded   *time.Time `json:"date,omitempty"`
}

type Purchase struct {
	ItemName  string     `json:"item"`
	Quantity  float64    `json:"quantity"`
	TotalCost float64    `json:"cost"`
	Timestamp *time.Time `json:"date,omitempty"`
}

type Sale struct {
	ItemName  string     `json:"item"`
	Quantity  float64    `json:"quantity"`
	Revenue   float64    `json:"revenue"`
	Timestamp *time.Time `json:"date,omitempty"`
}

// Expense is a recurring monthly cost line.
type Expense struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Document is the single persisted unit. Purchases and Sales are
// append-only logs.
type Document struct {
	Inventory     []InventoryItem `json:"inventory"`
	Purchases     []Purchase      `json:"purchases"`
	Sales         []Sale          `json:"sales"`
	Rent          float64         `json:"rent"`
	OtherExpenses []Expense       `json:"otherExpenses"`
}

// Clone returns a copy that shares no slices or timestamps with d.
func (d Document) Clone() Document {
	out := Document{
		Inventory:     make([]InventoryItem, len(d.Inventory)),
		Purchases:     make([]Purchase, len(d.Purchases)),
		Sales:         make([]Sale, len(d.Sales)),
		Rent:          d.Rent,
		OtherExpenses: make([]Expense, len(d.OtherExpenses)),
	}
	for i, item := range d.Inventory {
		item.DateAdded = cloneTime(item.DateAdded)
		out.Inventory[i] = item
	}
	for i, p := range d.Purchases {
		p.Timestamp = cloneTime(p.Timestamp)
		out.Purchases[i] = p
	}
	for i, s := range d.Sales {
		s.Timestamp = cloneTime(s.Timestamp)
		out.Sales[i] = s
	}
	copy(out.OtherExpenses, d.OtherExpenses)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

type Timeframe string

const (
	TimeframeAll     Timeframe = "all"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeDaily   Timeframe = "daily"
)

// ChartPoint is one bucket of the chart series. NetProfit is only set on
// whole-window points.
type ChartPoint struct {
	Label       string   `json:"name"`
	Sales       float64  `json:"sales"`
	Purchases   float64  `json:"purchases"`
	GrossProfit float64  `json:"gross_profit"`
	NetProfit   *float64 `json:"net_profit,omitempty"`
}

// Report is derived from a Document and never persisted.
type Report struct {
	Timeframe      Timeframe    `json:"timeframe"`
	GeneratedAt    time.Time    `json:"generated_at"`
	TotalSales     float64      `json:"total_sales"`
	TotalPurchases float64      `json:"total_purchases"`
	InventoryValue float64      `json:"inventory_value"`
	Rent           float64      `json:"rent"`
	OtherExpenses  float64      `json:"other_expenses"`
	COGS           float64      `json:"cogs"`
	GrossProfit    float64      `json:"gross_profit"`
	NetProfit      float64      `json:"net_profit"`
	ChartTitle     string       `json:"chart_title"`
	ChartSeries    []ChartPoint `json:"chart_series"`
}

type PurchaseRequest struct {
	ItemName  string  `json:"item"`
	Quantity  float64 `json:"quantity"`
	TotalCost float64 `json:"cost"`
}

type SaleRequest struct {
	ItemName string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type InventoryItemRequest struct {
	Name        string     `json:"item"`
	Quantity    float64    `json:"quantity"`
	CostPerUnit float64    `json:"costPerUnit"`
	DateAdded   *time.Time `json:"date,omitempty"`
}

type RentRequest struct {
	Rent float64 `json:"rent"`
}

type ExpenseRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
}
