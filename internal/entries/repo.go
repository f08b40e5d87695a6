package entries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/pagination"
)

// Repository handles entry persistence. The active set and the deleted set
// are rows of the same table split on deleted_at.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.Entry) error
	Update(ctx context.Context, entry *models.Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Entry, error)
	List(ctx context.Context, params ListParams) ([]models.Entry, *pagination.Cursor, error)
	ListDeleted(ctx context.Context, params ListParams) ([]models.Entry, *pagination.Cursor, error)
	ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Entry, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an entry repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Update(ctx context.Context, entry *models.Entry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// FindByID returns the row regardless of its deleted flag; callers decide
// whether a deleted row counts. A missing row yields (nil, nil).
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *repository) List(ctx context.Context, params ListParams) ([]models.Entry, *pagination.Cursor, error) {
	return r.list(ctx, params, false)
}

func (r *repository) ListDeleted(ctx context.Context, params ListParams) ([]models.Entry, *pagination.Cursor, error) {
	return r.list(ctx, params, true)
}

func (r *repository) list(ctx context.Context, params ListParams, deleted bool) ([]models.Entry, *pagination.Cursor, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Entry{})
	if deleted {
		query = query.Where("deleted_at IS NOT NULL")
	} else {
		query = query.Where("deleted_at IS NULL")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Entry
	if err := query.Order("created_at DESC, id DESC").Limit(pagination.LimitWithBuffer(limit)).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > limit {
		next := rows[limit]
		rows = rows[:limit]
		return rows, &pagination.Cursor{
			CreatedAt: next.CreatedAt,
			ID:        next.ID,
		}, nil
	}

	return rows, nil, nil
}

func (r *repository) ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Entry, error) {
	if limit <= 0 {
		limit = 250
	}
	var rows []models.Entry
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Order("deleted_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Entry{}).Error
}

// CountByStatus tallies the active set per status.
func (r *repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
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
