package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/logger"
)

type fakeTrashRepo struct {
	rows     map[uuid.UUID]*models.Entry
	failIDs  map[uuid.UUID]bool
	listErr  error
	captured time.Time
}

func newFakeTrashRepo() *fakeTrashRepo {
	return &fakeTrashRepo{
		rows:    make(map[uuid.UUID]*models.Entry),
		failIDs: make(map[uuid.UUID]bool),
	}
}

func (f *fakeTrashRepo) seed(deletedAt time.Time) uuid.UUID {
	id := uuid.New()
	f.rows[id] = &models.Entry{ID: id, DeletedAt: &deletedAt}
	return id
}

func (f *fakeTrashRepo) ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.captured = cutoff
	var out []models.Entry
	for _, entry := range f.rows {
		if entry.DeletedAt.Before(cutoff) {
			out = append(out, *entry)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTrashRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if f.failIDs[id] {
		return fmt.Errorf("boom")
	}
	delete(f.rows, id)
	return nil
}

func newTestJob(t *testing.T, repo trashRepo, days int) Job {
	t.Helper()
	job, err := NewTrashRetentionJob(TrashRetentionJobParams{
		Logger:        logger.New(logger.Options{ServiceName: "test"}),
		Repo:          repo,
		RetentionDays: days,
	})
	require.NoError(t, err)
	return job
}

func TestTrashRetentionPurgesOnlyExpiredRows(t *testing.T) {
	repo := newFakeTrashRepo()
	old := repo.seed(time.Now().UTC().Add(-40 * 24 * time.Hour))
	recent := repo.seed(time.Now().UTC().Add(-2 * 24 * time.Hour))

	job := newTestJob(t, repo, 30)
	require.NoError(t, job.Run(context.Background()))

	_, oldKept := repo.rows[old]
	_, recentKept := repo.rows[recent]
	assert.False(t, oldKept)
	assert.True(t, recentKept)
}

func TestTrashRetentionCutoffUsesRetentionDays(t *testing.T) {
	repo := newFakeTrashRepo()
	job := newTestJob(t, repo, 7)

	require.NoError(t, job.Run(context.Background()))

	expected := time.Now().UTC().Add(-7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, repo.captured, time.Minute)
}

func TestTrashRetentionCollectsDeleteFailures(t *testing.T) {
	repo := newFakeTrashRepo()
	bad := repo.seed(time.Now().UTC().Add(-40 * 24 * time.Hour))
	good := repo.seed(time.Now().UTC().Add(-40 * 24 * time.Hour))
	repo.failIDs[bad] = true

	job := newTestJob(t, repo, 30)
	err := job.Run(context.Background())

	// The good row is purged even though the bad one errored.
	require.Error(t, err)
	_, goodKept := repo.rows[good]
	assert.False(t, goodKept)
	_, badKept := repo.rows[bad]
	assert.True(t, badKept)
}
