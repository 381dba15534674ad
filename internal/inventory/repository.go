package inventory

import (
	"context"
	"errors"

	"github.com/angelmondragon/shopfloor/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no inventory row has the requested id.
var ErrNotFound = errors.New("inventory item not found")

// Repository persists inventory rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns every row, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindForSale picks the row a sale of the variant draws from: most stock
// first, then the oldest row.
func (r *Repository) FindForSale(ctx context.Context, v Variant) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("type = ? AND color = ? AND size = ?", v.Type, v.Color, v.Size).
		Order("quantity DESC").
		Order("created_at ASC").
		Order("id ASC").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// DecrementStock subtracts qty only while enough stock remains and reports
// whether the row was changed.
func (r *Repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumns(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": r.db.NowFunc(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) CreateBatch(ctx context.Context, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// Update writes every mutable column of item.
func (r *Repository) Update(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"type":       item.Type,
			"color":      item.Color,
			"size":       item.Size,
			"quantity":   item.Quantity,
			"price":      item.Price,
			"updated_at": r.db.NowFunc(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, item.ID)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InventoryItem{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListLowStock returns rows below LowStockThreshold, scarcest first.
func (r *Repository) ListLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("quantity < ?", LowStockThreshold).
		Order("quantity ASC").
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
