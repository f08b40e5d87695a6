package entries

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taketwocare/solecare-backend/internal/workflow"
	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/enums"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
	"github.com/taketwocare/solecare-backend/pkg/logger"
	"github.com/taketwocare/solecare-backend/pkg/pagination"
)

// Rules reported by Create. Every violated rule is returned in one
// validation error so the dashboard can flag all fields at once.
const (
	RuleMissingPhone           = "missing-phone"
	RuleMissingDeliveryAddress = "missing-delivery-address"
	RuleMissingService         = "missing-service"
	RuleInvalidTotal           = "invalid-total"
	RuleMissingBeforePhoto     = "missing-before-photo"
)

// ServiceParams groups dependencies for the entry lifecycle service.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger

	// DeletableFrom lists the statuses an entry may be soft-deleted from.
	// Empty means all statuses.
	DeletableFrom []enums.EntryStatus
}

// Service owns the entry lifecycle: intake, release, completion, the
// deleted set, and billing totals.
type Service struct {
	repo      Repository
	logg      *logger.Logger
	deletable map[enums.EntryStatus]bool
	now       func() time.Time
}

// NewService builds an entry lifecycle service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}

	deletable := make(map[enums.EntryStatus]bool)
	if len(params.DeletableFrom) == 0 {
		deletable[enums.EntryStatusPending] = true
		deletable[enums.EntryStatusSubstantialCompletion] = true
		deletable[enums.EntryStatusCompleted] = true
	} else {
		for _, status := range params.DeletableFrom {
			deletable[status] = true
		}
	}

	return &Service{
		repo:      params.Repo,
		logg:      params.Logger,
		deletable: deletable,
		now:       time.Now,
	}, nil
}

// Create validates the intake form and persists a new pending entry.
func (s *Service) Create(ctx context.Context, input IntakeInput) (*models.Entry, error) {
	if err := validateIntake(input); err != nil {
		return nil, err
	}

	now := s.now()
	entry := &models.Entry{
		ID:              uuid.New(),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		Phone:           strings.TrimSpace(input.Phone),
		Email:           strings.TrimSpace(input.Email),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		ItemDescription: input.ItemDescription,
		ConditionNotes:  input.ConditionNotes,
		Handler:         input.Handler,
		Services:        input.Services.Clone(),
		BeforePhotos:    input.BeforePhotos.Clone(),
		ServiceBill:     input.ServiceBill,
		AdditionalBill:  input.AdditionalBill,
		DeliveryOption:  input.DeliveryOption,
		Status:          enums.EntryStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating entry")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithEntryID(ctx, entry.ID.String()), "entry created")
	}
	return entry, nil
}

func validateIntake(input IntakeInput) error {
	var rules []string

	if strings.TrimSpace(input.Phone) == "" {
		rules = append(rules, RuleMissingPhone)
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		rules = append(rules, RuleMissingDeliveryAddress)
	}
	if !input.Services.NonEmpty() {
		rules = append(rules, RuleMissingService)
	}
	total := input.ServiceBill
	if input.AdditionalBill.Valid {
		total = total.Add(input.AdditionalBill.Decimal)
	}
	if !total.IsPositive() {
		rules = append(rules, RuleInvalidTotal)
	}
	if !input.BeforePhotos.NonEmpty() {
		rules = append(rules, RuleMissingBeforePhoto)
	}

	if len(rules) > 0 {
		return pkgerrors.Validation("intake details incomplete", rules)
	}
	return nil
}

// Get returns an active entry. Rows in the deleted set are not found here.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	return s.findActive(ctx, id)
}

// List pages the active set, newest first.
func (s *Service) List(ctx context.Context, params ListParams) ([]models.Entry, *pagination.Cursor, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing entries")
	}
	return rows, next, nil
}

// ListDeleted pages the deleted set, newest first.
func (s *Service) ListDeleted(ctx context.Context, params ListParams) ([]models.Entry, *pagination.Cursor, error) {
	rows, next, err := s.repo.ListDeleted(ctx, params)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing deleted entries")
	}
	return rows, next, nil
}

// Release runs the gate over the submitted service answers, validates the
// release details, and moves a pending entry to substantial completion.
func (s *Service) Release(ctx context.Context, id uuid.UUID, state workflow.ServiceState, data workflow.ReleaseData) (*models.Entry, error) {
	entry, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Status != enums.EntryStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "entry already released")
	}

	if err := workflow.RequestRelease(state); err != nil {
		return nil, err
	}
	if err := workflow.ValidateRelease(data); err != nil {
		return nil, err
	}

	workflow.ApplyRelease(entry, state, data, s.now())
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "releasing entry")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithEntryID(ctx, entry.ID.String()), "entry released")
	}
	return entry, nil
}

// MarkDone advances substantial_completion to completed. Any other source
// status is a conflict; status never moves backwards or skips ahead.
func (s *Service) MarkDone(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.Status.CanAdvanceTo(enums.EntryStatusCompleted) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "entry is not ready for completion")
	}

	entry.Status = enums.EntryStatusCompleted
	entry.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "completing entry")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithEntryID(ctx, entry.ID.String()), "entry completed")
	}
	return entry, nil
}

// Edit applies a partial update to an active entry. An empty patch still
// refreshes updated_at and changes nothing else.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, patch EditPatch) (*models.Entry, error) {
	entry, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	applyPatch(entry, patch)
	entry.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating entry")
	}
	return entry, nil
}

func validatePatch(patch EditPatch) error {
	var rules []string

	if patch.Phone != nil && strings.TrimSpace(*patch.Phone) == "" {
		rules = append(rules, RuleMissingPhone)
	}
	if patch.Services != nil && !patch.Services.NonEmpty() {
		rules = append(rules, RuleMissingService)
	}
	if patch.ServiceBill != nil && patch.ServiceBill.IsNegative() {
		rules = append(rules, RuleInvalidTotal)
	}
	if patch.AdditionalBill != nil && patch.AdditionalBill.Valid && patch.AdditionalBill.Decimal.IsNegative() {
		rules = append(rules, RuleInvalidTotal)
	}

	if len(rules) > 0 {
		return pkgerrors.Validation("edit details invalid", rules)
	}
	return nil
}

func applyPatch(entry *models.Entry, patch EditPatch) {
	if patch.CustomerName != nil {
		entry.CustomerName = *patch.CustomerName
	}
	if patch.Phone != nil {
		entry.Phone = *patch.Phone
	}
	if patch.Email != nil {
		entry.Email = *patch.Email
	}
	if patch.DeliveryAddress != nil {
		entry.DeliveryAddress = *patch.DeliveryAddress
	}
	if patch.ItemDescription != nil {
		entry.ItemDescription = *patch.ItemDescription
	}
	if patch.ConditionNotes != nil {
		entry.ConditionNotes = *patch.ConditionNotes
	}
	if patch.Handler != nil {
		entry.Handler = *patch.Handler
	}
	if patch.Services != nil {
		entry.Services = patch.Services.Clone()
	}
	if patch.BeforePhotos != nil {
		entry.BeforePhotos = patch.BeforePhotos.Clone()
	}
	if patch.AfterPhotos != nil {
		entry.AfterPhotos = patch.AfterPhotos.Clone()
	}
	if patch.ServiceBill != nil {
		entry.ServiceBill = *patch.ServiceBill
	}
	if patch.AdditionalBill != nil {
		entry.AdditionalBill = *patch.AdditionalBill
	}
	if patch.DeliveryOption != nil {
		entry.DeliveryOption = patch.DeliveryOption
	}
	if patch.MarkedAs != nil {
		entry.MarkedAs = patch.MarkedAs
	}
	if patch.WaiverURL != nil {
		entry.WaiverURL = patch.WaiverURL
	}
	if patch.WaiverSigned != nil {
		entry.WaiverSigned = *patch.WaiverSigned
	}
}

// SoftDelete moves an active entry into the deleted set. Status is kept so a
// later restore picks up exactly where the entry left off.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.deletable[entry.Status] {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "entry cannot be deleted from its current status")
	}

	now := s.now()
	entry.DeletedAt = &now
	entry.UpdatedAt = now
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting entry")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithEntryID(ctx, entry.ID.String()), "entry moved to trash")
	}
	return entry, nil
}

// Restore pulls an entry out of the deleted set with its prior status
// intact. Entries not in the deleted set are not found.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.findDeleted(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.DeletedAt = nil
	entry.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restoring entry")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithEntryID(ctx, entry.ID.String()), "entry restored")
	}
	return entry, nil
}

// PermanentDelete removes a deleted-set row for good. Active entries and
// already-purged ids are not found, so a second call fails the same way a
// never-existing id does.
func (s *Service) PermanentDelete(ctx context.Context, id uuid.UUID) error {
	entry, err := s.findDeleted(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, entry.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "purging entry")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithEntryID(ctx, entry.ID.String()), "entry permanently deleted")
	}
	return nil
}

func (s *Service) findActive(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading entry")
	}
	if entry == nil || entry.Deleted() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entry not found")
	}
	return entry, nil
}

func (s *Service) findDeleted(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading entry")
	}
	if entry == nil || !entry.Deleted() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entry not found in trash")
	}
	return entry, nil
}
