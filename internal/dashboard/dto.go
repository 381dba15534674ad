package dashboard

import (
	"github.com/angelmondragon/shopfloor/internal/inventory"
	"github.com/angelmondragon/shopfloor/internal/sales"
	"github.com/shopspring/decimal"
)

// SummaryDTO is the dashboard payload. Every field is recomputed per call.
type SummaryDTO struct {
	TotalSales     int64               `json:"total_sales"`
	UnitsSold      int64               `json:"units_sold"`
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	Customers      int64               `json:"customers"`
	LowStock       []inventory.ItemDTO `json:"low_stock"`
	RecentSales    []sales.SaleDTO     `json:"recent_sales"`
	RevenueByColor []ColorRevenue      `json:"revenue_by_color"`
}

type ColorRevenue struct {
	Color   string          `json:"color"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}
