package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/taketwocare/solecare-backend/api/responses"
	"github.com/taketwocare/solecare-backend/api/validators"
	"github.com/taketwocare/solecare-backend/internal/reports"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
	"github.com/taketwocare/solecare-backend/pkg/logger"
)

// ReportsSummary returns dashboard counters for active, deleted, and flagged
// entries.
func ReportsSummary(svc *reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// ReportsRevenue returns per-day revenue for the requested window.
func ReportsRevenue(svc *reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.Revenue(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rows == nil {
			rows = []reports.RevenueRow{}
		}

		responses.WriteSuccess(w, map[string]any{"revenue": rows})
	}
}

// ReportsExportCSV streams the full billing export. Errors after the first
// row are logged rather than re-enveloped since headers are already out.
func ReportsExportCSV(svc *reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		filename := fmt.Sprintf("entries-%s.csv", time.Now().UTC().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := svc.ExportCSV(r.Context(), w); err != nil {
			if logg != nil {
				logg.Error(r.Context(), "reports.export.failed", err)
			}
			return
		}
	}
}
