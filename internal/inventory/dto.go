package inventory

import (
	"strings"
	"time"

	"github.com/angelmondragon/shopfloor/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant identifies a stock line by its (type, color, size) triple.
type Variant struct {
	Type  string `json:"type"`
	Color string `json:"color"`
	Size  string `json:"size"`
}

// ItemDTO is the inventory row returned to clients.
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemInput carries every mutable field; create and update both take it.
type ItemInput struct {
	Type     string          `json:"type" validate:"min=2,max=100"`
	Color    string          `json:"color" validate:"min=2,max=100"`
	Size     string          `json:"size" validate:"min=1,max=50"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
}

func (in ItemInput) normalized() ItemInput {
	in.Type = strings.TrimSpace(in.Type)
	in.Color = strings.TrimSpace(in.Color)
	in.Size = strings.TrimSpace(in.Size)
	return in
}

func (in ItemInput) apply(item *models.InventoryItem) {
	item.Type = in.Type
	item.Color = in.Color
	item.Size = in.Size
	item.Quantity = in.Quantity
	item.Price = in.Price.Round(2)
}

// FromModel converts a persisted row.
func FromModel(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:        item.ID,
		Type:      item.Type,
		Color:     item.Color,
		Size:      item.Size,
		Quantity:  item.Quantity,
		Price:     item.Price,
		LowStock:  IsLowStock(item.Quantity),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func fromModels(items []models.InventoryItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
