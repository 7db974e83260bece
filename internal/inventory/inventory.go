// Package inventory values stock using the weighted-average cost method.
// Functions never modify their input slices.
package inventory

import (
	"math"
	"strings"

	"kioskanalyzer/internal/domain"
	"kioskanalyzer/internal/store"
)

// ApplyPurchase folds a purchase into the inventory. An existing item is
// re-costed as the quantity-weighted blend of old and new stock; an unknown
// item is added at the purchase's unit cost.
func ApplyPurchase(items []domain.InventoryItem, purchase domain.Purchase) []domain.InventoryItem {
	out := make([]domain.InventoryItem, len(items), len(items)+1)
	copy(out, items)

	if idx := indexOf(out, purchase.ItemName); idx >= 0 {
		item := out[idx]
		newQty := finite(item.Quantity + purchase.Quantity)
		item.CostPerUnit = weightedCost(item.Quantity, item.CostPerUnit, newQty, purchase.TotalCost)
		item.Quantity = newQty
		out[idx] = item
		return out
	}

	unitCost := 0.0
	if purchase.Quantity > 0 {
		unitCost = finite(purchase.TotalCost / purchase.Quantity)
	}
	return append(out, domain.InventoryItem{
		Name:        purchase.ItemName,
		Quantity:    purchase.Quantity,
		CostPerUnit: unitCost,
		DateAdded:   purchase.Timestamp,
	})
}

func weightedCost(oldQty, oldCost, newQty, addedCost float64) float64 {
	if newQty <= 0 {
		return 0
	}
	return finite((oldCost*oldQty + addedCost) / newQty)
}

// TotalValue is the sum of quantity times unit cost.
func TotalValue(items []domain.InventoryItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Quantity * item.CostPerUnit
	}
	return finite(total)
}

// finite maps an overflowed or undefined result to 0 so it can still be
// encoded and rendered.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// AddItem appends a manually entered item. Names are compared without case
// here so "cheese" cannot shadow "Cheese"; stock for an existing item is
// added through a purchase instead.
func AddItem(items []domain.InventoryItem, item domain.InventoryItem) ([]domain.InventoryItem, error) {
	for _, existing := range items {
		if strings.EqualFold(existing.Name, item.Name) {
			return items, store.ErrDuplicateItem
		}
	}
	out := make([]domain.InventoryItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, item), nil
}

// UpdateItem replaces the item with the same exact name. A nil DateAdded
// keeps the stored item's date.
func UpdateItem(items []domain.InventoryItem, item domain.InventoryItem) ([]domain.InventoryItem, error) {
	idx := indexOf(items, item.Name)
	if idx < 0 {
		return items, store.ErrNotFound
	}
	if item.DateAdded == nil {
		item.DateAdded = items[idx].DateAdded
	}
	out := make([]domain.InventoryItem, len(items))
	copy(out, items)
	out[idx] = item
	return out, nil
}

func DeleteItem(items []domain.InventoryItem, name string) ([]domain.InventoryItem, error) {
	idx := indexOf(items, name)
	if idx < 0 {
		return items, store.ErrNotFound
	}
	out := make([]domain.InventoryItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...), nil
}

func indexOf(items []domain.InventoryItem, name string) int {
	for i, item := range items {
		if item.Name == name {
			return i
		}
	}
	return -1
}
