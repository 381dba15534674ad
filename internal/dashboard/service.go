package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/angelmondragon/shopfloor/internal/inventory"
	"github.com/angelmondragon/shopfloor/internal/sales"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	recentSalesLimit = 5
	topColorsLimit   = 6
)

// Service builds the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (*SummaryDTO, error)
}

type service struct {
	sales        *sales.Repository
	inventory    *inventory.Repository
	defaultPrice decimal.Decimal
}

// NewService wires the dashboard to the sales and inventory stores.
// defaultPrice prices sales whose inventory row no longer exists.
func NewService(salesRepo *sales.Repository, inventoryRepo *inventory.Repository, defaultPrice decimal.Decimal) (Service, error) {
	if salesRepo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{sales: salesRepo, inventory: inventoryRepo, defaultPrice: defaultPrice}, nil
}

func (s *service) Summary(ctx context.Context) (*SummaryDTO, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory")
	}
	book := inventory.NewPriceBook(items, s.defaultPrice)

	groups, err := s.sales.UnitsByVariant(ctx, sales.Filter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate sales")
	}
	customers, err := s.sales.CountCustomers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count customers")
	}
	recent, err := s.sales.Recent(ctx, recentSalesLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recent sales")
	}
	low, err := s.inventory.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: low stock")
	}

	out := &SummaryDTO{
		TotalRevenue:   sales.Revenue(groups, book),
		Customers:      customers,
		LowStock:       make([]inventory.ItemDTO, 0, len(low)),
		RecentSales:    make([]sales.SaleDTO, 0, len(recent)),
		RevenueByColor: revenueByColor(groups, book),
	}
	for _, g := range groups {
		out.TotalSales += g.Sales
		out.UnitsSold += g.Units
	}
	for i := range low {
		out.LowStock = append(out.LowStock, *inventory.FromModel(&low[i]))
	}
	for i := range recent {
		out.RecentSales = append(out.RecentSales, sales.Priced(&recent[i], book))
	}
	return out, nil
}

// revenueByColor ranks colors by revenue, highest first with ties broken by
// color name, and keeps the top six.
func revenueByColor(groups []sales.VariantUnits, book *inventory.PriceBook) []ColorRevenue {
	byColor := map[string]*ColorRevenue{}
	for _, g := range groups {
		price, _ := book.Price(g.Variant())
		entry, ok := byColor[g.Color]
		if !ok {
			entry = &ColorRevenue{Color: g.Color, Revenue: decimal.Zero}
			byColor[g.Color] = entry
		}
		entry.Units += g.Units
		entry.Revenue = entry.Revenue.Add(price.Mul(decimal.NewFromInt(g.Units)))
	}

	out := make([]ColorRevenue, 0, len(byColor))
	for _, entry := range byColor {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Color < out[j].Color
	})
	if len(out) > topColorsLimit {
		out = out[:topColorsLimit]
	}
	return out
}
