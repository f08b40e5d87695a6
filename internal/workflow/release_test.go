package workflow

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taketwocare/solecare-backend/pkg/db/models"
	"github.com/taketwocare/solecare-backend/pkg/enums"
	pkgerrors "github.com/taketwocare/solecare-backend/pkg/errors"
	"github.com/taketwocare/solecare-backend/pkg/types"
)

func deliveryOption(v enums.DeliveryOption) *enums.DeliveryOption { return &v }

func TestValidateReleaseReportsAllRules(t *testing.T) {
	// Nothing filled in: both base rules at once.
	err := ValidateRelease(ReleaseData{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.ElementsMatch(t, []string{RuleMissingAfterPhotos, RuleMissingDeliveryOption}, typed.Rules())
}

func TestValidateReleaseDeliveryAddress(t *testing.T) {
	t.Run("delivery without address", func(t *testing.T) {
		err := ValidateRelease(ReleaseData{
			AfterPhotos:    types.StringList{"https://cdn.example.com/after-1.jpg"},
			DeliveryOption: deliveryOption(enums.DeliveryOptionDelivery),
		})
		require.Error(t, err)
		assert.Equal(t, []string{RuleMissingDeliveryAddress}, pkgerrors.As(err).Rules())
	})

	t.Run("pickup needs no address", func(t *testing.T) {
		err := ValidateRelease(ReleaseData{
			AfterPhotos:    types.StringList{"https://cdn.example.com/after-1.jpg"},
			DeliveryOption: deliveryOption(enums.DeliveryOptionPickup),
		})
		assert.NoError(t, err)
	})

	t.Run("delivery with address", func(t *testing.T) {
		err := ValidateRelease(ReleaseData{
			AfterPhotos:     types.StringList{"https://cdn.example.com/after-1.jpg"},
			DeliveryOption:  deliveryOption(enums.DeliveryOptionDelivery),
			DeliveryAddress: "12 Mabini St, Quezon City",
		})
		assert.NoError(t, err)
	})
}

func TestValidateReleaseBlankPhotosDoNotCount(t *testing.T) {
	err := ValidateRelease(ReleaseData{
		AfterPhotos:    types.StringList{"", ""},
		DeliveryOption: deliveryOption(enums.DeliveryOptionPickup),
	})
	require.Error(t, err)
	assert.Equal(t, []string{RuleMissingAfterPhotos}, pkgerrors.As(err).Rules())
}

func TestApplyRelease(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	entry := &models.Entry{
		Status:          enums.EntryStatusPending,
		DeliveryAddress: "existing address",
	}

	state := ServiceState{
		ReceivedBy:  receivedBy(enums.ReceivedByTakeTwo),
		ShoeClean:   enums.AnswerNo,
		ServiceType: serviceType(enums.ServiceTypeRestoration),

		BasicCleaning: enums.AnswerNo,
		NeedsReglue:   true,
		QCPassed:      true,
	}
	data := ReleaseData{
		AfterPhotos:    types.StringList{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		ServiceBill:    decimal.NewFromInt(1200),
		AdditionalBill: decimal.NewNullDecimal(decimal.NewFromInt(150)),
		DeliveryOption: deliveryOption(enums.DeliveryOptionPickup),
	}

	ApplyRelease(entry, state, data, now)

	assert.Equal(t, enums.EntryStatusSubstantialCompletion, entry.Status)
	assert.Equal(t, enums.ReceivedByTakeTwo, *entry.ReceivedBy)
	assert.True(t, entry.NeedsReglue)
	assert.True(t, entry.QCPassed)
	assert.Equal(t, data.AfterPhotos, entry.AfterPhotos)
	assert.True(t, entry.ServiceBill.Equal(decimal.NewFromInt(1200)))
	require.True(t, entry.AdditionalBill.Valid)
	assert.True(t, entry.AdditionalBill.Decimal.Equal(decimal.NewFromInt(150)))
	assert.True(t, entry.TotalAmount().Equal(decimal.NewFromInt(1350)))
	assert.Equal(t, enums.DeliveryOptionPickup, *entry.DeliveryOption)
	// Blank release address leaves the intake address alone.
	assert.Equal(t, "existing address", entry.DeliveryAddress)
	assert.Equal(t, now, entry.UpdatedAt)
}

func TestApplyReleasePreservesPhotoOrder(t *testing.T) {
	entry := &models.Entry{Status: enums.EntryStatusPending}
	photos := types.StringList{"c.jpg", "a.jpg", "b.jpg"}

	ApplyRelease(entry, ServiceState{}, ReleaseData{AfterPhotos: photos}, time.Now())

	assert.Equal(t, photos, entry.AfterPhotos)
}
