package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"kioskanalyzer/internal/domain"
	"kioskanalyzer/internal/inventory"
	"kioskanalyzer/internal/report"
	"kioskanalyzer/internal/store"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type Option func(*Service)

// WithClock replaces the wall clock used to stamp transactions and anchor
// report windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

type Service struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

func New(docs *store.Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:  docs,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Document(_ context.Context) domain.Document {
	return s.store.Read()
}

// Report recomputes the report from the current document. It is cheap
// enough to call on every request, which keeps day, week and month windows
// current without a background refresh.
func (s *Service) Report(_ context.Context, timeframe domain.Timeframe) domain.Report {
	return report.Build(s.store.Read(), timeframe, s.now())
}

func (s *Service) RecordPurchase(ctx context.Context, req domain.PurchaseRequest) (domain.Purchase, error) {
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.ItemName == "" || !positive(req.Quantity) || !nonNegative(req.TotalCost) {
		return domain.Purchase{}, store.ErrInvalidTransaction
	}

	stamp := s.now()
	purchase := domain.Purchase{
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		TotalCost: req.TotalCost,
		Timestamp: &stamp,
	}

	_, err := s.store.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		doc.Purchases = append(doc.Purchases, purchase)
		doc.Inventory = inventory.ApplyPurchase(doc.Inventory, purchase)
		return doc, nil
	})
	if err != nil {
		return domain.Purchase{}, err
	}

	s.logger.Info("purchase recorded",
		actorField(ctx),
		zap.String("item", purchase.ItemName),
		zap.Float64("quantity", purchase.Quantity),
		zap.Float64("cost", purchase.TotalCost),
	)
	return purchase, nil
}

// RecordSale appends a sale. Stock levels are not decremented; inventory is
// only maintained through purchases and manual edits.
func (s *Service) RecordSale(ctx context.Context, req domain.SaleRequest) (domain.Sale, error) {
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.ItemName == "" || !nonNegative(req.Quantity) || !nonNegative(req.Revenue) {
		return domain.Sale{}, store.ErrInvalidTransaction
	}

	stamp := s.now()
	sale := domain.Sale{
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		Revenue:   req.Revenue,
		Timestamp: &stamp,
	}

	_, err := s.store.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		doc.Sales = append(doc.Sales, sale)
		return doc, nil
	})
	if err != nil {
		return domain.Sale{}, err
	}

	s.logger.Info("sale recorded", actorField(ctx), zap.String("item", sale.ItemName), zap.Float64("revenue", sale.Revenue))
	return sale, nil
}

func (s *Service) AddInventoryItem(ctx context.Context, req domain.InventoryItemRequest) (domain.InventoryItem, error) {
	item, err := s.validItem(req)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	if item.DateAdded == nil {
		stamp := s.now()
		item.DateAdded = &stamp
	}

	_, err = s.store.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		items, err := inventory.AddItem(doc.Inventory, item)
		if err != nil {
			return doc, err
		}
		doc.Inventory = items
		return doc, nil
	})
	if err != nil {
		s.logger.Warn("inventory item rejected", zap.String("item", item.Name), zap.Error(err))
		return domain.InventoryItem{}, err
	}
	return item, nil
}

func (s *Service) UpdateInventoryItem(ctx context.Context, req domain.InventoryItemRequest) (domain.InventoryItem, error) {
	item, err := s.validItem(req)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	// An edit without a date keeps the date the item was first added.
	_, err = s.store.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		items, err := inventory.UpdateItem(doc.Inventory, item)
		if err != nil {
			return doc, err
		}
		for _, stored := range items {
			if stored.Name == item.Name {
				item = stored
			}
		}
		doc.Inventory = items
		return doc, nil
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}
	return item, nil
}

func (s *Service) DeleteInventoryItem(ctx context.Context, name string) error {
	_, err := s.store.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		items, err := inventory.DeleteItem(doc.Inventory, name)
		if err != nil {
			return doc, err
		}
		doc.Inventory = items
		return doc, nil
	})
	return err
}

func (s *Service) SetRent(ctx context.Context, rent float64) error {
	if !nonNegative(rent) {
		return store.ErrInvalidTransaction
	}
	_, err := s.store.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		doc.Rent = rent
		return doc, nil
	})
	return err
}

func (s *Service) AddExpense(ctx context.Context, req domain.ExpenseRequest) (domain.Expense, error) {
	expense := domain.Expense{Name: strings.TrimSpace(req.Name), Amount: req.Amount}
	if expense.Name == "" || !positive(expense.Amount) {
		return domain.Expense{}, store.ErrInvalidTransaction
	}

	_, err := s.store.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		doc.OtherExpenses = append(doc.OtherExpenses, expense)
		return doc, nil
	})
	if err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

// DeleteExpense removes the expense at position index.
func (s *Service) DeleteExpense(ctx context.Context, index int) error {
	_, err := s.store.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		if index < 0 || index >= len(doc.OtherExpenses) {
			return doc, fmt.Errorf("expense %d: %w", index, store.ErrNotFound)
		}
		doc.OtherExpenses = append(doc.OtherExpenses[:index], doc.OtherExpenses[index+1:]...)
		return doc, nil
	})
	return err
}

func (s *Service) validItem(req domain.InventoryItemRequest) (domain.InventoryItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || !nonNegative(req.Quantity) || !nonNegative(req.CostPerUnit) {
		return domain.InventoryItem{}, store.ErrInvalidTransaction
	}

	return domain.InventoryItem{
		Name:        name,
		Quantity:    req.Quantity,
		CostPerUnit: req.CostPerUnit,
		DateAdded:   req.DateAdded,
	}, nil
}

func actorField(ctx context.Context) zap.Field {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return zap.Skip()
	}
	return zap.String("actor", actor.Username)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
