package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taketwocare/solecare-backend/internal/reports"
	"github.com/taketwocare/solecare-backend/pkg/db/models"
)

type stubReportsRepo struct {
	statusCounts map[string]int64
	revenueRows  []reports.RevenueRow

	revenueFrom time.Time
	revenueTo   time.Time
}

func (s *stubReportsRepo) StatusCounts(ctx context.Context) (map[string]int64, error) {
	return s.statusCounts, nil
}

func (s *stubReportsRepo) DeletedCount(ctx context.Context) (int64, error) { return 2, nil }

func (s *stubReportsRepo) MarkedAsCounts(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{"paid": 3}, nil
}

func (s *stubReportsRepo) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("1200.00"), nil
}

func (s *stubReportsRepo) RevenueByDay(ctx context.Context, from, to time.Time) ([]reports.RevenueRow, error) {
	s.revenueFrom = from
	s.revenueTo = to
	return s.revenueRows, nil
}

func (s *stubReportsRepo) ForEachEntry(ctx context.Context, fn func(entry models.Entry) error) error {
	return nil
}

func newReportsService(t *testing.T, repo *stubReportsRepo) *reports.Service {
	t.Helper()
	svc, err := reports.NewService(reports.ServiceParams{Repo: repo})
	require.NoError(t, err)
	return svc
}

func TestReportsSummary(t *testing.T) {
	repo := &stubReportsRepo{statusCounts: map[string]int64{"pending": 4}}
	handler := ReportsSummary(newReportsService(t, repo), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data reports.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(4), envelope.Data.StatusCounts["pending"])
	assert.Equal(t, int64(2), envelope.Data.DeletedCount)
	assert.True(t, envelope.Data.RevenueTotal.Equal(decimal.RequireFromString("1200.00")))
}

func TestReportsRevenueParsesWindow(t *testing.T) {
	repo := &stubReportsRepo{revenueRows: []reports.RevenueRow{
		{Day: "2026-08-01", Total: decimal.RequireFromString("300.00"), Entries: 2},
	}}
	handler := ReportsRevenue(newReportsService(t, repo), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue?from=2026-08-01&to=2026-08-15", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2026, repo.revenueFrom.Year())
	assert.Equal(t, time.August, repo.revenueFrom.Month())
	assert.Equal(t, 15, repo.revenueTo.Day())

	var envelope struct {
		Data struct {
			Revenue []reports.RevenueRow `json:"revenue"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Revenue, 1)
	assert.Equal(t, "2026-08-01", envelope.Data.Revenue[0].Day)
}

func TestReportsRevenueRejectsBadDate(t *testing.T) {
	handler := ReportsRevenue(newReportsService(t, &stubReportsRepo{}), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/revenue?from=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportsExportCSVHeaders(t *testing.T) {
	handler := ReportsExportCSV(newReportsService(t, &stubReportsRepo{}), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/export.csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	firstLine := strings.SplitN(rec.Body.String(), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(firstLine, "id,customer_name,phone"))
}
