package store

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kioskanalyzer/internal/domain"
)

// Persisted data may have been hand-edited or written by an older schema,
// so every field is coerced here once. Code past this boundary trusts the
// numbers it is given.

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

func decodeDocument(raw map[string]any, logger *zap.Logger) domain.Document {
	doc := emptyDocument()
	doc.Rent = toNumber(raw["rent"])

	seen := make(map[string]bool)
	for _, entry := range objects(raw["inventory"], "inventory", logger) {
		item := domain.InventoryItem{
			Name:        toString(entry["item"]),
			Quantity:    toNumber(entry["quantity"]),
			CostPerUnit: toNumber(entry["costPerUnit"]),
			DateAdded:   toTime(entry["date"]),
		}
		if seen[item.Name] {
			logger.Warn("dropping duplicate inventory item", zap.String("item", item.Name))
			continue
		}
		seen[item.Name] = true
		doc.Inventory = append(doc.Inventory, item)
	}

	for _, entry := range objects(raw["purchases"], "purchases", logger) {
		doc.Purchases = append(doc.Purchases, domain.Purchase{
			ItemName:  toString(entry["item"]),
			Quantity:  toNumber(entry["quantity"]),
			TotalCost: toNumber(entry["cost"]),
			Timestamp: toTime(entry["date"]),
		})
	}

	for _, entry := range objects(raw["sales"], "sales", logger) {
		doc.Sales = append(doc.Sales, domain.Sale{
			ItemName:  toString(entry["item"]),
			Quantity:  toNumber(entry["quantity"]),
			Revenue:   toNumber(entry["revenue"]),
			Timestamp: toTime(entry["date"]),
		})
	}

	for _, entry := range objects(raw["otherExpenses"], "otherExpenses", logger) {
		doc.OtherExpenses = append(doc.OtherExpenses, domain.Expense{
			Name:   toString(entry["name"]),
			Amount: toNumber(entry["amount"]),
		})
	}

	return doc
}

func objects(v any, field string, logger *zap.Logger) []map[string]any {
	if v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		logger.Warn("expected a list, ignoring field", zap.String("field", field))
		return nil
	}

	out := make([]map[string]any, 0, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			logger.Warn("skipping malformed entry", zap.String("field", field), zap.Int("index", i))
			continue
		}
		out = append(out, obj)
	}
	return out
}

// toNumber returns 0 for anything that is not a finite number or a string
// starting with one.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case string:
		s := strings.TrimSpace(n)
		if d, err := decimal.NewFromString(s); err == nil {
			return toNumber(d.InexactFloat64())
		}
		prefix := leadingNumber.FindString(s)
		if prefix == "" {
			return 0
		}
		d, err := decimal.NewFromString(prefix)
		if err != nil {
			return 0
		}
		return toNumber(d.InexactFloat64())
	default:
		return 0
	}
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toTime(v any) *time.Time {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
