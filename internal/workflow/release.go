package workflow

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/enums"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
	"github.com/taketwocare/solecare-backend/pkg/types"
)

// Rules reported by ValidateRelease. All violated rules are returned
// together so the caller can show every warning at once.
const (
	RuleMissingAfterPhotos     = "missing-after-photos"
	RuleMissingDeliveryOption  = "missing-delivery-option"
	RuleMissingDeliveryAddress = "missing-delivery-address"
)

// ReleaseData carries the release sub-flow inputs: after-photos, billing,
// and delivery details collected once the gate has passed.
type ReleaseData struct {
	AfterPhotos     types.StringList      `json:"after_photos"`
	ServiceBill     decimal.Decimal       `json:"service_bill"`
	AdditionalBill  decimal.NullDecimal   `json:"additional_bill"`
	DeliveryOption  *enums.DeliveryOption `json:"delivery_option,omitempty"`
	DeliveryAddress string                `json:"delivery_address"`
}

// ValidateRelease checks the release-time required fields and reports every
// unmet condition in one validation error.
func ValidateRelease(data ReleaseData) error {
	var rules []string

	if !data.AfterPhotos.NonEmpty() {
		rules = append(rules, RuleMissingAfterPhotos)
	}
	if data.DeliveryOption == nil || !data.DeliveryOption.IsValid() {
		rules = append(rules, RuleMissingDeliveryOption)
	} else if *data.DeliveryOption == enums.DeliveryOptionDelivery && strings.TrimSpace(data.DeliveryAddress) == "" {
		rules = append(rules, RuleMissingDeliveryAddress)
	}

	if len(rules) > 0 {
		return pkgerrors.Validation("release details incomplete", rules)
	}
	return nil
}

// ApplyRelease merges the tend-flow answers and release details into the
// entry and advances it to substantial completion. Callers are expected to
// have run RequestRelease and ValidateRelease first; this only mutates.
func ApplyRelease(entry *models.Entry, state ServiceState, data ReleaseData, now time.Time) {
	entry.ReceivedBy = state.ReceivedBy
	entry.ShoeClean = state.ShoeClean
	entry.ServiceType = state.ServiceType
	entry.BasicCleaning = state.BasicCleaning
	entry.NeedsReglue = state.NeedsReglue
	entry.NeedsPaint = state.NeedsPaint
	entry.QCPassed = state.QCPassed

	entry.AfterPhotos = data.AfterPhotos.Clone()
	entry.ServiceBill = data.ServiceBill
	if data.AdditionalBill.Valid {
		entry.AdditionalBill = data.AdditionalBill
	}
	entry.DeliveryOption = data.DeliveryOption
	if strings.TrimSpace(data.DeliveryAddress) != "" {
		entry.DeliveryAddress = data.DeliveryAddress
	}

	entry.Status = enums.EntryStatusSubstantialCompletion
	entry.UpdatedAt = now
}
