package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/taketwocare/solecare-backend/internal/entries"
	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/enums"
	"github.com/taketwocare/solecare-backend/pkg/pagination"
	"github.com/taketwocare/solecare-backend/pkg/types"
)

type fakeEntryRepo struct {
	rows map[uuid.UUID]*models.Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{rows: map[uuid.UUID]*models.Entry{}}
}

func (f *fakeEntryRepo) clone(e *models.Entry) *models.Entry {
	cp := *e
	return &cp
}

func (f *fakeEntryRepo) WithTx(tx *gorm.DB) entries.Repository { return f }

func (f *fakeEntryRepo) Create(ctx context.Context, entry *models.Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	f.rows[entry.ID] = f.clone(entry)
	return nil
}

func (f *fakeEntryRepo) Update(ctx context.Context, entry *models.Entry) error {
	f.rows[entry.ID] = f.clone(entry)
	return nil
}

func (f *fakeEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return f.clone(row), nil
}

func (f *fakeEntryRepo) selectRows(deleted bool, status *enums.EntryStatus) []models.Entry {
	var out []models.Entry
	for _, row := range f.rows {
		if (row.DeletedAt != nil) != deleted {
			continue
		}
		if status != nil && row.Status != *status {
			continue
		}
		out = append(out, *f.clone(row))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func (f *fakeEntryRepo) List(ctx context.Context, params entries.ListParams) ([]models.Entry, *pagination.Cursor, error) {
	return f.selectRows(false, params.Status), nil, nil
}

func (f *fakeEntryRepo) ListDeleted(ctx context.Context, params entries.ListParams) ([]models.Entry, *pagination.Cursor, error) {
	return f.selectRows(true, params.Status), nil, nil
}

func (f *fakeEntryRepo) ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Entry, error) {
	var out []models.Entry
	for _, row := range f.rows {
		if row.DeletedAt != nil && row.DeletedAt.Before(cutoff) {
			out = append(out, *f.clone(row))
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeEntryRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, row := range f.rows {
		if row.DeletedAt == nil {
			counts[string(row.Status)]++
		}
	}
	return counts, nil
}

func newEntriesRouter(t *testing.T) (*chi.Mux, *fakeEntryRepo) {
	t.Helper()

	repo := newFakeEntryRepo()
	svc, err := entries.NewService(entries.ServiceParams{Repo: repo})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/api/v1/entries", func(r chi.Router) {
		r.Get("/", EntriesList(svc, nil))
		r.Post("/", EntryCreate(svc, nil))
		r.Route("/{entryId}", func(r chi.Router) {
			r.Get("/", EntryGet(svc, nil))
			r.Patch("/", EntryPatch(svc, nil))
			r.Post("/release", EntryRelease(svc, nil))
			r.Post("/done", EntryDone(svc, nil))
			r.Delete("/", EntrySoftDelete(svc, nil))
		})
	})
	r.Route("/api/v1/trash", func(r chi.Router) {
		r.Get("/", TrashList(svc, nil))
		r.Post("/{entryId}/restore", TrashRestore(svc, nil))
		r.Delete("/{entryId}", TrashPermanentDelete(svc, nil))
	})
	return r, repo
}

func doJSON(t *testing.T, router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEntry(t *testing.T, rec *httptest.ResponseRecorder) models.Entry {
	t.Helper()

	var envelope struct {
		Data models.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

const validIntakeBody = `{
	"customer_name": "Dana Cruz",
	"phone": "555-0134",
	"delivery_address": "12 Mabini St",
	"services": ["deep clean"],
	"before_photos": ["https://cdn.example.com/b1.jpg"],
	"service_bill": "800.00",
	"delivery_option": "pickup"
}`

func createEntry(t *testing.T, router http.Handler) models.Entry {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/entries", validIntakeBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeEntry(t, rec)
}

func TestEntryCreateReturnsPendingEntry(t *testing.T) {
	router, _ := newEntriesRouter(t)

	entry := createEntry(t, router)
	assert.Equal(t, enums.EntryStatusPending, entry.Status)
	assert.Equal(t, "Dana Cruz", entry.CustomerName)
	assert.NotEqual(t, uuid.Nil, entry.ID)
}

func TestEntryCreateReportsRules(t *testing.T) {
	router, _ := newEntriesRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/entries", `{"customer_name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)

	details, ok := envelope.Error.Details.(map[string]any)
	require.True(t, ok)
	rules, ok := details["rules"].([]any)
	require.True(t, ok)
	assert.Contains(t, rules, "missing-phone")
	assert.Contains(t, rules, "missing-service")
	assert.Contains(t, rules, "missing-before-photo")
}

func TestEntryGetUnknownIsNotFound(t *testing.T) {
	router, _ := newEntriesRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/entries/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntryGetRejectsBadID(t *testing.T) {
	router, _ := newEntriesRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/entries/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEntryPatchUpdatesFields(t *testing.T) {
	router, _ := newEntriesRouter(t)
	entry := createEntry(t, router)

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/entries/"+entry.ID.String(), `{"customer_name":"Dana C.","additional_bill":"150.00"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeEntry(t, rec)
	assert.Equal(t, "Dana C.", updated.CustomerName)
	assert.True(t, updated.AdditionalBill.Valid)
	assert.True(t, updated.TotalAmount().Equal(decimal.RequireFromString("950.00")))
}

const validReleaseBody = `{
	"state": {
		"received_by": "taketwo",
		"shoe_clean": "yes",
		"qc_passed": true
	},
	"release": {
		"after_photos": ["https://cdn.example.com/a1.jpg"],
		"service_bill": "800.00",
		"delivery_option": "pickup"
	}
}`

func TestEntryReleaseMovesToSubstantialCompletion(t *testing.T) {
	router, _ := newEntriesRouter(t)
	entry := createEntry(t, router)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/release", entry.ID), validReleaseBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	released := decodeEntry(t, rec)
	assert.Equal(t, enums.EntryStatusSubstantialCompletion, released.Status)
	assert.Equal(t, []string{"https://cdn.example.com/a1.jpg"}, []string(released.AfterPhotos))
}

func TestEntryReleaseBlockedByGate(t *testing.T) {
	router, _ := newEntriesRouter(t)
	entry := createEntry(t, router)

	body := `{
		"state": {"received_by": "taketwo", "shoe_clean": "yes", "qc_passed": false},
		"release": {
			"after_photos": ["https://cdn.example.com/a1.jpg"],
			"service_bill": "800.00",
			"delivery_option": "pickup"
		}
	}`
	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/release", entry.ID), body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestEntryDoneAfterRelease(t *testing.T) {
	router, _ := newEntriesRouter(t)
	entry := createEntry(t, router)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/release", entry.ID), validReleaseBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/done", entry.ID), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, enums.EntryStatusCompleted, decodeEntry(t, rec).Status)
}

func TestEntryDoneFromPendingIsConflict(t *testing.T) {
	router, _ := newEntriesRouter(t)
	entry := createEntry(t, router)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/done", entry.ID), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTrashRoundTrip(t *testing.T) {
	router, _ := newEntriesRouter(t)
	entry := createEntry(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/entries/"+entry.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decodeEntry(t, rec).DeletedAt)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/entries/"+entry.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/trash", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Data entryListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data.Entries, 1)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/trash/%s/restore", entry.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	restored := decodeEntry(t, rec)
	assert.Nil(t, restored.DeletedAt)
	assert.Equal(t, enums.EntryStatusPending, restored.Status)
}

func TestTrashPermanentDelete(t *testing.T) {
	router, repo := newEntriesRouter(t)
	entry := createEntry(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/entries/"+entry.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/trash/"+entry.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, repo.rows)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/trash/"+entry.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntriesListFiltersByStatus(t *testing.T) {
	router, _ := newEntriesRouter(t)
	entry := createEntry(t, router)
	createEntry(t, router)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/entries/%s/release", entry.ID), validReleaseBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/entries?status=substantial_completion", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Data entryListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data.Entries, 1)
	assert.Equal(t, entry.ID, listed.Data.Entries[0].ID)
}

func TestEntriesListRejectsBadStatus(t *testing.T) {
	router, _ := newEntriesRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/entries?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
