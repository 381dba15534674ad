package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/shopfloor/internal/inventory"
	"github.com/angelmondragon/shopfloor/pkg/db"
	"github.com/angelmondragon/shopfloor/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/angelmondragon/shopfloor/pkg/logger"
	"github.com/angelmondragon/shopfloor/pkg/metrics"
	"github.com/angelmondragon/shopfloor/pkg/pagination"
	"github.com/angelmondragon/shopfloor/pkg/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const insufficientStockMessage = "insufficient stock"

// Service records sales and reports on them.
type Service interface {
	RecordSale(ctx context.Context, input RecordSaleInput) (*SaleDTO, error)
	ListSales(ctx context.Context, input ListSalesInput) (*SalesReport, error)
}

// ServiceParams bundles the dependencies required to build a sales service.
type ServiceParams struct {
	Repo         *Repository
	Inventory    *inventory.Repository
	DB           *db.Client
	Logger       *logger.Logger
	Metrics      *metrics.SaleMetrics
	DefaultPrice decimal.Decimal
}

type service struct {
	repo         *Repository
	inventory    *inventory.Repository
	dbClient     *db.Client
	logg         *logger.Logger
	metrics      *metrics.SaleMetrics
	defaultPrice decimal.Decimal
}

// NewService constructs a sales service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("sales repository is required")
	}
	if params.Inventory == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:         params.Repo,
		inventory:    params.Inventory,
		dbClient:     params.DB,
		logg:         logg,
		metrics:      params.Metrics,
		defaultPrice: params.DefaultPrice,
	}, nil
}

// RecordSale inserts the sale and decrements stock in one transaction.
// Either both changes commit or neither does.
func (s *service) RecordSale(ctx context.Context, input RecordSaleInput) (*SaleDTO, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveDuration(time.Since(start)) }()

	input = input.normalized()
	if err := validation.Struct(input); err != nil {
		s.metrics.IncFailed(metrics.ReasonValidation)
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"type":     input.Type,
		"color":    input.Color,
		"size":     input.Size,
		"quantity": input.Quantity,
	})

	var recorded *models.SaleRecord
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		invRepo := s.inventory.WithTx(tx)
		salesRepo := s.repo.WithTx(tx)

		item, err := invRepo.FindForSale(ctx, input.variant())
		if err != nil {
			if errors.Is(err, inventory.ErrNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory item")
		}
		if input.Quantity > item.Quantity {
			return insufficientStock(item.Quantity)
		}

		recorded, err = salesRepo.Insert(ctx, &models.SaleRecord{
			Name:     input.Name,
			Phone:    input.Phone,
			Address:  input.Address,
			Type:     input.Type,
			Color:    input.Color,
			Size:     input.Size,
			Quantity: input.Quantity,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sale")
		}

		ok, err := invRepo.DecrementStock(ctx, item.ID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement stock")
		}
		if !ok {
			return insufficientStock(item.Quantity)
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sale transaction")
		}
		s.metrics.IncFailed(failureReason(err))
		if pkgerrors.CodeOf(err) == pkgerrors.CodeDependency {
			s.logg.Error(ctx, "record sale failed", err)
		} else {
			s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "sale rejected")
		}
		return nil, err
	}

	s.metrics.IncRecorded(recorded.Quantity)
	s.logg.Info(s.logg.WithField(ctx, "sale_id", recorded.ID.String()), "sale recorded")
	return FromModel(recorded), nil
}

// ListSales returns one page of the filtered sales report plus totals over
// the whole filtered set.
func (s *service) ListSales(ctx context.Context, input ListSalesInput) (*SalesReport, error) {
	if input.From != nil && input.To != nil && input.To.Before(*input.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not be before from")
	}
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	filter := Filter{Name: input.Name, From: input.From, To: input.To}
	rows, err := s.repo.List(ctx, filter, cursor, pagination.LimitWithBuffer(input.Pagination.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}
	rows, next := pagination.Page(rows, input.Pagination.Limit, func(r models.SaleRecord) pagination.Cursor {
		return pagination.Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
	})

	groups, err := s.repo.UnitsByVariant(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate sales")
	}
	book, err := s.priceBook(ctx)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{
		Sales:      make([]SaleDTO, 0, len(rows)),
		Totals:     Totals{Revenue: Revenue(groups, book)},
		NextCursor: next,
	}
	for i := range rows {
		report.Sales = append(report.Sales, Priced(&rows[i], book))
	}
	for _, g := range groups {
		report.Totals.Sales += g.Sales
		report.Totals.Units += g.Units
	}
	return report, nil
}

func (s *service) priceBook(ctx context.Context) (*inventory.PriceBook, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load prices")
	}
	return inventory.NewPriceBook(items, s.defaultPrice), nil
}

func insufficientStock(available int) error {
	return pkgerrors.New(pkgerrors.CodeConflict, insufficientStockMessage).
		WithDetails(map[string]int{"available": available})
}

func failureReason(err error) string {
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeValidation:
		return metrics.ReasonValidation
	case pkgerrors.CodeNotFound:
		return metrics.ReasonNotFound
	case pkgerrors.CodeConflict:
		return metrics.ReasonConflict
	default:
		return metrics.ReasonStore
	}
}
