package sales

import (
	"strings"
	"time"

	"github.com/angelmondragon/shopfloor/internal/inventory"
	"github.com/angelmondragon/shopfloor/pkg/db/models"
	"github.com/angelmondragon/shopfloor/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordSaleInput is one sale as entered on the sales form.
type RecordSaleInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"required,max=50"`
	Address  string `json:"address" validate:"required,max=500"`
	Type     string `json:"type" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

func (in RecordSaleInput) normalized() RecordSaleInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.Type = strings.TrimSpace(in.Type)
	in.Color = strings.TrimSpace(in.Color)
	in.Size = strings.TrimSpace(in.Size)
	return in
}

func (in RecordSaleInput) variant() inventory.Variant {
	return inventory.Variant{Type: in.Type, Color: in.Color, Size: in.Size}
}

// SaleDTO is a committed sale. UnitPrice and Total are resolved from current
// inventory when the sale is read back in a report.
type SaleDTO struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Address   string           `json:"address"`
	Type      string           `json:"type"`
	Color     string           `json:"color"`
	Size      string           `json:"size"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Total     *decimal.Decimal `json:"total,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// FromModel converts a persisted sale without pricing.
func FromModel(s *models.SaleRecord) *SaleDTO {
	if s == nil {
		return nil
	}
	return &SaleDTO{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Address:   s.Address,
		Type:      s.Type,
		Color:     s.Color,
		Size:      s.Size,
		Quantity:  s.Quantity,
		CreatedAt: s.CreatedAt,
	}
}

// Priced converts a sale and prices it against book.
func Priced(s *models.SaleRecord, book *inventory.PriceBook) SaleDTO {
	dto := FromModel(s)
	price, _ := book.Price(inventory.Variant{Type: s.Type, Color: s.Color, Size: s.Size})
	total := price.Mul(decimal.NewFromInt(int64(s.Quantity)))
	dto.UnitPrice = &price
	dto.Total = &total
	return *dto
}

// ListSalesInput filters the sales report. From and To are inclusive.
type ListSalesInput struct {
	Name       string
	From       *time.Time
	To         *time.Time
	Pagination pagination.Params
}

// Totals summarise every sale matching the report filter, not just one page.
type Totals struct {
	Sales   int64           `json:"sales"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesReport is one page of the sales report.
type SalesReport struct {
	Sales      []SaleDTO `json:"sales"`
	Totals     Totals    `json:"totals"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// VariantUnits is the number of units sold of one variant.
type VariantUnits struct {
	Type  string
	Color string
	Size  string
	Sales int64
	Units int64
}

func (v VariantUnits) Variant() inventory.Variant {
	return inventory.Variant{Type: v.Type, Color: v.Color, Size: v.Size}
}

// Revenue prices grouped units against book.
func Revenue(groups []VariantUnits, book *inventory.PriceBook) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		price, _ := book.Price(g.Variant())
		total = total.Add(price.Mul(decimal.NewFromInt(g.Units)))
	}
	return total
}
