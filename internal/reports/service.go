package reports

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taketwocare/solecare-backend/pkg/db/models"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
)

// Summary is the dashboard headline block.
type Summary struct {
	StatusCounts   map[string]int64 `json:"status_counts"`
	DeletedCount   int64            `json:"deleted_count"`
	MarkedAsCounts map[string]int64 `json:"marked_as_counts"`
	RevenueTotal   decimal.Decimal  `json:"revenue_total"`
}

// RevenueRow is one day of completed-entry revenue.
type RevenueRow struct {
	Day     string          `json:"day"`
	Total   decimal.Decimal `json:"total"`
	Entries int64           `json:"entries"`
}

var csvHeader = []string{
	"id", "customer_name", "phone", "email", "status", "marked_as",
	"received_by", "service_type", "delivery_option", "service_bill",
	"additional_bill", "total_amount", "created_at", "updated_at",
}

// ServiceParams groups dependencies for the reports service.
type ServiceParams struct {
	Repo Repository
}

// Service produces dashboard summaries, revenue breakdowns, and CSV exports.
type Service struct {
	repo Repository
}

// NewService builds a reports service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// Summary gathers the headline counts and the completed revenue total.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	statusCounts, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting statuses")
	}
	deleted, err := s.repo.DeletedCount(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting trash")
	}
	marked, err := s.repo.MarkedAsCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting tags")
	}
	revenue, err := s.repo.RevenueTotal(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing revenue")
	}

	return &Summary{
		StatusCounts:   statusCounts,
		DeletedCount:   deleted,
		MarkedAsCounts: marked,
		RevenueTotal:   revenue,
	}, nil
}

// Revenue returns per-day revenue rows for completed entries in [from, to).
// A zero range defaults to the trailing 30 days.
func (s *Service) Revenue(ctx context.Context, from, to time.Time) ([]RevenueRow, error) {
	if from.IsZero() && to.IsZero() {
		to = time.Now().UTC()
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from must be before to")
	}

	rows, err := s.repo.RevenueByDay(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading revenue")
	}
	return rows, nil
}

// ExportCSV streams every non-deleted entry as one CSV row.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing csv header")
	}

	err := s.repo.ForEachEntry(ctx, func(entry models.Entry) error {
		return writer.Write(csvRecord(entry))
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "exporting entries")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flushing csv")
	}
	return nil
}

func csvRecord(entry models.Entry) []string {
	receivedBy := ""
	if entry.ReceivedBy != nil {
		receivedBy = entry.ReceivedBy.String()
	}
	serviceType := ""
	if entry.ServiceType != nil {
		serviceType = entry.ServiceType.String()
	}
	deliveryOption := ""
	if entry.DeliveryOption != nil {
		deliveryOption = entry.DeliveryOption.String()
	}
	markedAs := ""
	if entry.MarkedAs != nil {
		markedAs = entry.MarkedAs.String()
	}
	additional := ""
	if entry.AdditionalBill.Valid {
		additional = entry.AdditionalBill.Decimal.StringFixed(2)
	}

	return []string{
		entry.ID.String(),
		entry.CustomerName,
		entry.Phone,
		entry.Email,
		entry.Status.String(),
		markedAs,
		receivedBy,
		serviceType,
		deliveryOption,
		entry.ServiceBill.StringFixed(2),
		additional,
		entry.TotalAmount().StringFixed(2),
		entry.CreatedAt.UTC().Format(time.RFC3339),
		entry.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
