package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/enums"
)

// Repository runs the dashboard aggregate queries.
type Repository interface {
	StatusCounts(ctx context.Context) (map[string]int64, error)
	DeletedCount(ctx context.Context) (int64, error)
	MarkedAsCounts(ctx context.Context) (map[string]int64, error)
	RevenueTotal(ctx context.Context) (decimal.Decimal, error)
	RevenueByDay(ctx context.Context, from, to time.Time) ([]RevenueRow, error)
	ForEachEntry(ctx context.Context, fn func(entry models.Entry) error) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a reports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Entry{}).
		Select("status, COUNT(*) AS total").
		Where("deleted_at IS NULL").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

func (r *repository) DeletedCount(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Entry{}).
		Where("deleted_at IS NOT NULL").
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) MarkedAsCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		MarkedAs string
		Total    int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Entry{}).
		Select("marked_as, COUNT(*) AS total").
		Where("deleted_at IS NULL AND marked_as IS NOT NULL").
		Group("marked_as").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.MarkedAs] = r.Total
	}
	return counts, nil
}

// RevenueTotal sums service_bill plus additional_bill over completed,
// non-deleted entries.
func (r *repository) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.Entry{}).
		Select("SUM(service_bill + COALESCE(additional_bill, 0))").
		Where("deleted_at IS NULL AND status = ?", enums.EntryStatusCompleted).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) RevenueByDay(ctx context.Context, from, to time.Time) ([]RevenueRow, error) {
	var rows []RevenueRow
	if err := r.db.WithContext(ctx).
		Model(&models.Entry{}).
		Select("DATE(updated_at) AS day, SUM(service_bill + COALESCE(additional_bill, 0)) AS total, COUNT(*) AS entries").
		Where("deleted_at IS NULL AND status = ?", enums.EntryStatusCompleted).
		Where("updated_at >= ? AND updated_at < ?", from, to).
		Group("DATE(updated_at)").
		Order("day ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ForEachEntry walks every non-deleted entry in creation order, in batches.
func (r *repository) ForEachEntry(ctx context.Context, fn func(entry models.Entry) error) error {
	var batch []models.Entry
	return r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at ASC").
		FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
			for _, entry := range batch {
				if err := fn(entry); err != nil {
					return err
				}
			}
			return nil
		}).Error
}
