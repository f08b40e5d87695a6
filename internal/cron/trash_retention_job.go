package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/logger"
)

const (
	defaultTrashRetentionDays = 30
	trashPurgeBatchSize       = 200
)

type trashRepo interface {
	ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Entry, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// TrashRetentionJobParams configure the trash purge job.
type TrashRetentionJobParams struct {
	Logger        *logger.Logger
	Repo          trashRepo
	RetentionDays int
	BatchSize     int
}

type trashRetentionJob struct {
	logg      *logger.Logger
	repo      trashRepo
	retention int
	batchSize int
	now       func() time.Time
}

// NewTrashRetentionJob builds the job that permanently deletes entries left
// in the trash beyond the retention window.
func NewTrashRetentionJob(params TrashRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("entries repository required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = defaultTrashRetentionDays
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = trashPurgeBatchSize
	}
	return &trashRetentionJob{
		logg:      params.Logger,
		repo:      params.Repo,
		retention: retention,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

func (j *trashRetentionJob) Name() string { return "trash-retention" }

// Run purges in batches. Individual delete failures are collected and the
// sweep keeps going so one bad row cannot block the rest.
func (j *trashRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)

	var purged int
	var errs error
	for {
		batch, err := j.repo.ListDeletedBefore(ctx, cutoff, j.batchSize)
		if err != nil {
			return fmt.Errorf("listing expired trash: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		batchPurged := 0
		for _, entry := range batch {
			if err := j.repo.DeleteByID(ctx, entry.ID); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("purge entry %s: %w", entry.ID, err))
				continue
			}
			batchPurged++
		}
		purged += batchPurged

		if len(batch) < j.batchSize {
			break
		}
		// Failed rows stay in the listing; stop rather than spin on them.
		if batchPurged == 0 {
			break
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_purged":    purged,
	})
	j.logg.Info(logCtx, "trash retention sweep complete")
	return errs
}
