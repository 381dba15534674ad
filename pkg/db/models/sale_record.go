package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRecord is an immutable sale line. It copies the variant fields instead
// of referencing an inventory row, so deleting stock never touches history.
// No price is stored; reports resolve it from current inventory. NameFolded
// backs the case-insensitive name search.
type SaleRecord struct {
	ID         uuid.UUID `gorm:"column:id;type:varchar(36);primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	NameFolded string    `gorm:"column:name_folded;not null"`
	Phone      string    `gorm:"column:phone;not null"`
	Address    string    `gorm:"column:address;not null"`
	Type       string    `gorm:"column:type;not null"`
	Color      string    `gorm:"column:color;not null"`
	Size       string    `gorm:"column:size;not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (SaleRecord) TableName() string { return "sales" }

func (s *SaleRecord) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.NameFolded = FoldName(s.Name)
	return nil
}

// FoldName lowercases a customer name for case-insensitive matching.
func FoldName(name string) string {
	return strings.ToLower(name)
}
