package sales

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/shopfloor/pkg/db/models"
	"github.com/angelmondragon/shopfloor/pkg/pagination"
	"gorm.io/gorm"
)

// Filter narrows sales queries. Zero values match everything.
type Filter struct {
	Name string
	From *time.Time
	To   *time.Time
}

// Repository persists sale records.
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

func (r *Repository) Insert(ctx context.Context, sale *models.SaleRecord) (*models.SaleRecord, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// List returns up to limit sales newest first, starting after cursor.
func (r *Repository) List(ctx context.Context, f Filter, cursor *pagination.Cursor, limit int) ([]models.SaleRecord, error) {
	q := applyFilter(r.db.WithContext(ctx).Model(&models.SaleRecord{}), f)
	if cursor != nil {
		q = q.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.SaleRecord
	if err := q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Recent returns the n newest sales.
func (r *Repository) Recent(ctx context.Context, n int) ([]models.SaleRecord, error) {
	return r.List(ctx, Filter{}, nil, n)
}

// UnitsByVariant groups matching sales by variant.
func (r *Repository) UnitsByVariant(ctx context.Context, f Filter) ([]VariantUnits, error) {
	var rows []VariantUnits
	err := applyFilter(r.db.WithContext(ctx).Model(&models.SaleRecord{}), f).
		Select("type, color, size, COUNT(*) AS sales, COALESCE(SUM(quantity), 0) AS units").
		Group("type, color, size").
		Order("type, color, size").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountCustomers counts distinct customer names.
func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SaleRecord{}).
		Distinct("name").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func applyFilter(q *gorm.DB, f Filter) *gorm.DB {
	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where(`name_folded LIKE ? ESCAPE '\'`, "%"+escapeLike(models.FoldName(name))+"%")
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", f.To.UTC())
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
