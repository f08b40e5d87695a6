package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taketwocare/solecare-backend/pkg/enums"
	"github.com/taketwocare/solecare-backend/pkg/types"
)

// Entry is one customer service record tracked from intake through release,
// completion, and (optionally) the trash. A non-null DeletedAt moves the row
// into the deleted set while Status keeps the pre-delete value so restore
// can put it back unchanged.
type Entry struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	CustomerName    string `gorm:"column:customer_name;not null" json:"customer_name"`
	Phone           string `gorm:"column:phone;not null" json:"phone"`
	Email           string `gorm:"column:email" json:"email"`
	DeliveryAddress string `gorm:"column:delivery_address" json:"delivery_address"`

	ItemDescription string           `gorm:"column:item_description" json:"item_description"`
	ConditionNotes  string           `gorm:"column:condition_notes" json:"condition_notes"`
	Handler         string           `gorm:"column:handler" json:"handler"`
	Services        types.StringList `gorm:"column:services;type:jsonb;serializer:json" json:"services"`
	BeforePhotos    types.StringList `gorm:"column:before_photos;type:jsonb;serializer:json" json:"before_photos"`

	ReceivedBy    *enums.ReceivedBy  `gorm:"column:received_by;type:text" json:"received_by,omitempty"`
	ShoeClean     enums.Answer       `gorm:"column:shoe_clean;type:text;not null;default:''" json:"shoe_clean"`
	ServiceType   *enums.ServiceType `gorm:"column:service_type;type:text" json:"service_type,omitempty"`
	BasicCleaning enums.Answer       `gorm:"column:basic_cleaning;type:text;not null;default:''" json:"basic_cleaning"`
	NeedsReglue   bool               `gorm:"column:needs_reglue;not null;default:false" json:"needs_reglue"`
	NeedsPaint    bool               `gorm:"column:needs_paint;not null;default:false" json:"needs_paint"`
	QCPassed      bool               `gorm:"column:qc_passed;not null;default:false" json:"qc_passed"`

	AfterPhotos    types.StringList      `gorm:"column:after_photos;type:jsonb;serializer:json" json:"after_photos"`
	ServiceBill    decimal.Decimal       `gorm:"column:service_bill;type:numeric(12,2);not null;default:0" json:"service_bill"`
	AdditionalBill decimal.NullDecimal   `gorm:"column:additional_bill;type:numeric(12,2)" json:"additional_bill"`
	DeliveryOption *enums.DeliveryOption `gorm:"column:delivery_option;type:text" json:"delivery_option,omitempty"`

	WaiverURL    *string `gorm:"column:waiver_url" json:"waiver_url,omitempty"`
	WaiverSigned bool    `gorm:"column:waiver_signed;not null;default:false" json:"waiver_signed"`

	Status    enums.EntryStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	MarkedAs  *enums.MarkedAs   `gorm:"column:marked_as;type:text" json:"marked_as,omitempty"`
	DeletedAt *time.Time        `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName keeps gorm away from pluralization surprises.
func (Entry) TableName() string { return "entries" }

// TotalAmount is the billable sum: service bill plus additional bill, with a
// missing additional bill counting as zero. Always computed, never cached,
// so edits to either field are reflected immediately.
func (e *Entry) TotalAmount() decimal.Decimal {
	total := e.ServiceBill
	if e.AdditionalBill.Valid {
		total = total.Add(e.AdditionalBill.Decimal)
	}
	return total
}

// Deleted reports whether the entry currently sits in the deleted set.
func (e *Entry) Deleted() bool {
	return e.DeletedAt != nil
}
