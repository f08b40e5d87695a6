package entries

import (
	"github.com/shopspring/decimal"

	"github.com/taketwocare/solecare-backend/pkg/enums"
	"github.com/taketwocare/solecare-backend/pkg/pagination"
	"github.com/taketwocare/solecare-backend/pkg/types"
)

// IntakeInput is everything the front desk captures when a pair of shoes
// comes in. Photo and service lists keep the order the client submitted.
type IntakeInput struct {
	CustomerName    string `json:"customer_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	DeliveryAddress string `json:"delivery_address"`

	ItemDescription string           `json:"item_description"`
	ConditionNotes  string           `json:"condition_notes"`
	Handler         string           `json:"handler"`
	Services        types.StringList `json:"services"`
	BeforePhotos    types.StringList `json:"before_photos"`

	ServiceBill    decimal.Decimal       `json:"service_bill"`
	AdditionalBill decimal.NullDecimal   `json:"additional_bill"`
	DeliveryOption *enums.DeliveryOption `json:"delivery_option,omitempty"`
}

// EditPatch is a partial update. Nil fields are left untouched; set fields
// overwrite, including set-to-empty for the string fields.
type EditPatch struct {
	CustomerName    *string `json:"customer_name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`

	ItemDescription *string           `json:"item_description,omitempty"`
	ConditionNotes  *string           `json:"condition_notes,omitempty"`
	Handler         *string           `json:"handler,omitempty"`
	Services        *types.StringList `json:"services,omitempty"`
	BeforePhotos    *types.StringList `json:"before_photos,omitempty"`
	AfterPhotos     *types.StringList `json:"after_photos,omitempty"`

	ServiceBill    *decimal.Decimal      `json:"service_bill,omitempty"`
	AdditionalBill *decimal.NullDecimal  `json:"additional_bill,omitempty"`
	DeliveryOption *enums.DeliveryOption `json:"delivery_option,omitempty"`

	MarkedAs     *enums.MarkedAs `json:"marked_as,omitempty"`
	WaiverURL    *string         `json:"waiver_url,omitempty"`
	WaiverSigned *bool           `json:"waiver_signed,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p EditPatch) Empty() bool {
	return p.CustomerName == nil &&
		p.Phone == nil &&
		p.Email == nil &&
		p.DeliveryAddress == nil &&
		p.ItemDescription == nil &&
		p.ConditionNotes == nil &&
		p.Handler == nil &&
		p.Services == nil &&
		p.BeforePhotos == nil &&
		p.AfterPhotos == nil &&
		p.ServiceBill == nil &&
		p.AdditionalBill == nil &&
		p.DeliveryOption == nil &&
		p.MarkedAs == nil &&
		p.WaiverURL == nil &&
		p.WaiverSigned == nil
}

// ListParams configures entry list queries.
type ListParams struct {
	Status *enums.EntryStatus
	Limit  int
	Cursor *pagination.Cursor
}
