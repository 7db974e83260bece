package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"kioskanalyzer/internal/blob"
	"kioskanalyzer/internal/domain"
	"kioskanalyzer/internal/store"
)

// Wednesday afternoon.
var fixedNow = time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	docs := store.New(context.Background(), blob.NewMemory(), store.DefaultKey, nil)
	return New(docs, nil, WithClock(func() time.Time { return fixedNow }))
}

func TestRecordPurchaseUpdatesWeightedAverage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ItemName: "Cheese", Quantity: 10, TotalCost: 100}); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	purchase, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ItemName: " Cheese ", Quantity: 10, TotalCost: 300})
	if err != nil {
		t.Fatalf("second purchase failed: %v", err)
	}
	if purchase.Timestamp == nil || !purchase.Timestamp.Equal(fixedNow) {
		t.Fatalf("expected purchase stamped with clock, got %v", purchase.Timestamp)
	}

	doc := svc.Document(ctx)
	if len(doc.Purchases) != 2 {
		t.Fatalf("expected two purchases logged, got %d", len(doc.Purchases))
	}
	if len(doc.Inventory) != 1 {
		t.Fatalf("expected one inventory item, got %+v", doc.Inventory)
	}
	if doc.Inventory[0].Quantity != 20 || doc.Inventory[0].CostPerUnit != 20 {
		t.Fatalf("unexpected cheese %+v", doc.Inventory[0])
	}
}

func TestRecordPurchaseRejectsZeroQuantity(t *testing.T) {
	svc := newTestService(t)

	for _, req := range []domain.PurchaseRequest{
		{ItemName: "Cheese", Quantity: 0, TotalCost: 10},
		{ItemName: "Cheese", Quantity: -1, TotalCost: 10},
		{ItemName: "Cheese", Quantity: 1, TotalCost: -10},
		{ItemName: "  ", Quantity: 1, TotalCost: 10},
	} {
		if _, err := svc.RecordPurchase(context.Background(), req); !errors.Is(err, store.ErrInvalidTransaction) {
			t.Fatalf("expected %+v to be rejected, got %v", req, err)
		}
	}
	if doc := svc.Document(context.Background()); len(doc.Purchases) != 0 || len(doc.Inventory) != 0 {
		t.Fatalf("rejected purchases must not change the document: %+v", doc)
	}
}

func TestRecordSaleAllowsZeroQuantity(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.RecordSale(context.Background(), domain.SaleRequest{ItemName: "Pizza", Quantity: 0, Revenue: 50}); err != nil {
		t.Fatalf("expected zero-quantity sale to be accepted, got %v", err)
	}
	if _, err := svc.RecordSale(context.Background(), domain.SaleRequest{ItemName: "Pizza", Quantity: 1, Revenue: -1}); !errors.Is(err, store.ErrInvalidTransaction) {
		t.Fatalf("expected negative revenue to be rejected, got %v", err)
	}
}

func TestAddInventoryItemRejectsDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddInventoryItem(ctx, domain.InventoryItemRequest{Name: "Dough", Quantity: 5, CostPerUnit: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	_, err := svc.AddInventoryItem(ctx, domain.InventoryItemRequest{Name: "dough", Quantity: 1, CostPerUnit: 9})
	if !errors.Is(err, store.ErrDuplicateItem) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}

	doc := svc.Document(ctx)
	if len(doc.Inventory) != 1 || doc.Inventory[0].CostPerUnit != 2 {
		t.Fatalf("expected document unchanged, got %+v", doc.Inventory)
	}
	if doc.Inventory[0].DateAdded == nil || !doc.Inventory[0].DateAdded.Equal(fixedNow) {
		t.Fatalf("expected date added defaulted from clock")
	}
}

func TestUpdateAndDeleteInventoryItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddInventoryItem(ctx, domain.InventoryItemRequest{Name: "Dough", Quantity: 5, CostPerUnit: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.UpdateInventoryItem(ctx, domain.InventoryItemRequest{Name: "Dough", Quantity: 8, CostPerUnit: 3}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := svc.Document(ctx).Inventory[0]; got.Quantity != 8 || got.CostPerUnit != 3 {
		t.Fatalf("unexpected updated item %+v", got)
	}
	if _, err := svc.UpdateInventoryItem(ctx, domain.InventoryItemRequest{Name: "Olives", Quantity: 1}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.DeleteInventoryItem(ctx, "Dough"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(svc.Document(ctx).Inventory) != 0 {
		t.Fatalf("expected inventory empty after delete")
	}
}

func TestExpensesAndRent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetRent(ctx, -1); !errors.Is(err, store.ErrInvalidTransaction) {
		t.Fatalf("expected negative rent rejected, got %v", err)
	}
	if err := svc.SetRent(ctx, 30000); err != nil {
		t.Fatalf("set rent failed: %v", err)
	}
	if _, err := svc.AddExpense(ctx, domain.ExpenseRequest{Name: "Power", Amount: 0}); !errors.Is(err, store.ErrInvalidTransaction) {
		t.Fatalf("expected zero expense rejected, got %v", err)
	}
	for _, e := range []domain.ExpenseRequest{{Name: "Power", Amount: 2000}, {Name: "Water", Amount: 500}, {Name: "Internet", Amount: 500}} {
		if _, err := svc.AddExpense(ctx, e); err != nil {
			t.Fatalf("add expense failed: %v", err)
		}
	}
	if err := svc.DeleteExpense(ctx, 1); err != nil {
		t.Fatalf("delete expense failed: %v", err)
	}
	if err := svc.DeleteExpense(ctx, 7); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected out of range delete to fail, got %v", err)
	}

	doc := svc.Document(ctx)
	if doc.Rent != 30000 || len(doc.OtherExpenses) != 2 || doc.OtherExpenses[1].Name != "Internet" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestReportEndToEnd(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ItemName: "Cheese", Quantity: 10, TotalCost: 1000}); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if _, err := svc.RecordSale(ctx, domain.SaleRequest{ItemName: "Pizza", Quantity: 20, Revenue: 5000}); err != nil {
		t.Fatalf("sale failed: %v", err)
	}
	if err := svc.SetRent(ctx, 30000); err != nil {
		t.Fatalf("rent failed: %v", err)
	}
	if _, err := svc.AddExpense(ctx, domain.ExpenseRequest{Name: "Power", Amount: 3000}); err != nil {
		t.Fatalf("expense failed: %v", err)
	}

	all := svc.Report(ctx, domain.TimeframeAll)
	if all.TotalSales != 5000 || all.TotalPurchases != 1000 || all.GrossProfit != 4000 || all.NetProfit != -29000 {
		t.Fatalf("unexpected all report %+v", all)
	}
	if all.InventoryValue != 1000 {
		t.Fatalf("expected inventory value 1000, got %v", all.InventoryValue)
	}

	daily := svc.Report(ctx, domain.TimeframeDaily)
	if daily.Rent != 1000 || daily.OtherExpenses != 100 || daily.NetProfit != 4000-1000-100 {
		t.Fatalf("unexpected daily report %+v", daily)
	}

	weekly := svc.Report(ctx, domain.TimeframeWeekly)
	if weekly.Rent != 7500 || len(weekly.ChartSeries) != 1 || weekly.ChartSeries[0].Label != "Wed" {
		t.Fatalf("unexpected weekly report %+v", weekly)
	}
}

func TestUpdateInventoryItemKeepsDateAdded(t *testing.T) {
	ctx := context.Background()
	docs := store.New(ctx, blob.NewMemory(), store.DefaultKey, nil)
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	svc := New(docs, nil, WithClock(func() time.Time { return now }))

	if _, err := svc.AddInventoryItem(ctx, domain.InventoryItemRequest{Name: "Cheese", Quantity: 5, CostPerUnit: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	added := now

	now = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	item, err := svc.UpdateInventoryItem(ctx, domain.InventoryItemRequest{Name: "Cheese", Quantity: 7, CostPerUnit: 2})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if item.DateAdded == nil || !item.DateAdded.Equal(added) {
		t.Fatalf("expected returned item to keep %v, got %v", added, item.DateAdded)
	}
	if got := svc.Document(ctx).Inventory[0]; got.Quantity != 7 || got.DateAdded == nil || !got.DateAdded.Equal(added) {
		t.Fatalf("expected stored item to keep its date, got %+v", got)
	}

	explicit := time.Date(2023, time.December, 24, 0, 0, 0, 0, time.UTC)
	if _, err := svc.UpdateInventoryItem(ctx, domain.InventoryItemRequest{Name: "Cheese", Quantity: 7, CostPerUnit: 2, DateAdded: &explicit}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := svc.Document(ctx).Inventory[0].DateAdded; got == nil || !got.Equal(explicit) {
		t.Fatalf("expected explicit date to win, got %v", got)
	}
}

func TestReportStaysFiniteWhenTotalsOverflow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.RecordSale(ctx, domain.SaleRequest{ItemName: "Pizza", Quantity: 1, Revenue: 1e308}); err != nil {
			t.Fatalf("sale failed: %v", err)
		}
		if _, err := svc.RecordPurchase(ctx, domain.PurchaseRequest{ItemName: "Cheese", Quantity: 1, TotalCost: 1e308}); err != nil {
			t.Fatalf("purchase failed: %v", err)
		}
	}

	for _, tf := range []domain.Timeframe{domain.TimeframeAll, domain.TimeframeWeekly, domain.TimeframeDaily} {
		r := svc.Report(ctx, tf)
		values := []float64{r.TotalSales, r.TotalPurchases, r.InventoryValue, r.GrossProfit, r.NetProfit}
		for _, p := range r.ChartSeries {
			values = append(values, p.Sales, p.Purchases, p.GrossProfit)
		}
		for _, v := range values {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				t.Fatalf("%s: expected finite report values, got %+v", tf, r)
			}
		}
	}

	if cost := svc.Document(ctx).Inventory[0].CostPerUnit; math.IsInf(cost, 0) || math.IsNaN(cost) {
		t.Fatalf("expected finite cost per unit, got %v", cost)
	}
	if err := svc.SetRent(ctx, 10); err != nil {
		t.Fatalf("rent failed: %v", err)
	}
}
