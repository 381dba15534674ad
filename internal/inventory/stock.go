package inventory

import (
	"github.com/angelmondragon/shopfloor/pkg/db/models"
	"github.com/shopspring/decimal"
)

// LowStockThreshold marks rows whose quantity is strictly below it.
const LowStockThreshold = 5

func IsLowStock(quantity int) bool {
	return quantity < LowStockThreshold
}

// PriceBook resolves the current unit price for a variant. Sales do not
// store a price, so reports price them at read time.
type PriceBook struct {
	prices   map[Variant]decimal.Decimal
	fallback decimal.Decimal
}

// NewPriceBook indexes rows, which must be ordered oldest first: when a
// variant has duplicate rows the oldest row's price wins.
func NewPriceBook(rows []models.InventoryItem, fallback decimal.Decimal) *PriceBook {
	prices := make(map[Variant]decimal.Decimal, len(rows))
	for _, row := range rows {
		key := Variant{Type: row.Type, Color: row.Color, Size: row.Size}
		if _, seen := prices[key]; seen {
			continue
		}
		prices[key] = row.Price
	}
	return &PriceBook{prices: prices, fallback: fallback}
}

// Price returns the variant's price and whether it came from a live row.
// Missing variants (deleted stock) fall back to the default price.
func (b *PriceBook) Price(v Variant) (decimal.Decimal, bool) {
	if b == nil {
		return decimal.Zero, false
	}
	if p, ok := b.prices[v]; ok {
		return p, true
	}
	return b.fallback, false
}
