package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is one stocked variant. (type, color, size) is not unique:
// duplicate rows are distinct stock entries.
type InventoryItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:varchar(36);primaryKey"`
	Type      string          `gorm:"column:type;not null"`
	Color     string          `gorm:"column:color;not null"`
	Size      string          `gorm:"column:size;not null"`
	Quantity  int             `gorm:"column:quantity;not null;default:0"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (InventoryItem) TableName() string { return "inventory" }

func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
