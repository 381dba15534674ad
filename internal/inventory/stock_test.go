package inventory

import (
	"testing"
	"time"

	"github.com/angelmondragon/shopfloor/pkg/db/models"
	"github.com/shopspring/decimal"
)

func TestIsLowStock(t *testing.T) {
	cases := map[int]bool{0: true, 4: true, 5: false, 25: false}
	for qty, want := range cases {
		if got := IsLowStock(qty); got != want {
			t.Fatalf("IsLowStock(%d) = %v, want %v", qty, got, want)
		}
	}
}

func TestPriceBookOldestRowWins(t *testing.T) {
	now := time.Now()
	rows := []models.InventoryItem{
		{Type: "Jeans", Color: "Blue", Size: "32", Price: decimal.RequireFromString("49.99"), CreatedAt: now},
		{Type: "Jeans", Color: "Blue", Size: "32", Price: decimal.RequireFromString("10.00"), CreatedAt: now.Add(time.Minute)},
	}
	book := NewPriceBook(rows, decimal.NewFromInt(100))

	price, ok := book.Price(Variant{Type: "Jeans", Color: "Blue", Size: "32"})
	if !ok || !price.Equal(decimal.RequireFromString("49.99")) {
		t.Fatalf("expected oldest price 49.99, got %s (matched=%v)", price, ok)
	}

	price, ok = book.Price(Variant{Type: "Hat", Color: "Red", Size: "S"})
	if ok || !price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected fallback 100, got %s (matched=%v)", price, ok)
	}
}
