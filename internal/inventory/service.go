package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/shopfloor/pkg/db"
	"github.com/angelmondragon/shopfloor/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/angelmondragon/shopfloor/pkg/logger"
	"github.com/angelmondragon/shopfloor/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service manages the stock catalog.
type Service interface {
	List(ctx context.Context) ([]ItemDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	Create(ctx context.Context, input ItemInput) (*ItemDTO, error)
	Update(ctx context.Context, id uuid.UUID, input ItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SeedSamples(ctx context.Context) (int, error)
	Options(ctx context.Context, sel Selection) (*Options, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	logg     *logger.Logger
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, dbClient: dbClient, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]ItemDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory")
	}
	return fromModels(items), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "db: load inventory item")
	}
	return FromModel(item), nil
}

func (s *service) Create(ctx context.Context, input ItemInput) (*ItemDTO, error) {
	input = input.normalized()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{}
	input.apply(item)
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory item")
	}

	s.logg.Info(s.logg.WithField(ctx, "item_id", created.ID.String()), "inventory item created")
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input ItemInput) (*ItemDTO, error) {
	input = input.normalized()
	if err := validateInput(input); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{ID: id}
	input.apply(item)
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, mapRepoError(err, "db: update inventory item")
	}
	return FromModel(updated), nil
}

// Delete removes the row only. Sales keep their own copy of the variant.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "db: delete inventory item")
	}
	s.logg.Info(s.logg.WithField(ctx, "item_id", id.String()), "inventory item deleted")
	return nil
}

// SeedSamples fills an empty catalog with the sample stock and returns the
// number of rows written. A non-empty catalog is left alone.
func (s *service) SeedSamples(ctx context.Context) (int, error) {
	inserted := 0
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		count, err := txRepo.Count(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count inventory")
		}
		if count > 0 {
			return nil
		}
		rows := SampleItems()
		if err := txRepo.CreateBatch(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed inventory")
		}
		inserted = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		s.logg.Info(s.logg.WithField(ctx, "rows", inserted), "seeded sample inventory")
	}
	return inserted, nil
}

func (s *service) Options(ctx context.Context, sel Selection) (*Options, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	opts := DeriveOptions(items, sel)
	return &opts, nil
}

// SampleItems is the stock a fresh install starts with.
func SampleItems() []models.InventoryItem {
	return []models.InventoryItem{
		sample("T-Shirt", "Black", "M", 25, "19.99"),
		sample("T-Shirt", "White", "L", 30, "19.99"),
		sample("Jeans", "Blue", "32", 15, "49.99"),
		sample("Hoodie", "Gray", "XL", 10, "39.99"),
		sample("Dress", "Red", "S", 8, "59.99"),
		sample("Jacket", "Brown", "M", 5, "89.99"),
	}
}

func sample(typ, color, size string, qty int, price string) models.InventoryItem {
	return models.InventoryItem{
		Type:     typ,
		Color:    color,
		Size:     size,
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
	}
}

// maxPrice is the first value that does not fit the NUMERIC(12,2) column.
var maxPrice = decimal.New(1, 10)

func validateInput(input ItemInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "must be at least 0"})
	}
	if input.Price.Round(2).GreaterThanOrEqual(maxPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "must be less than 10000000000"})
	}
	return nil
}

func mapRepoError(err error, msg string) error {
	if errors.Is(err, ErrNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
