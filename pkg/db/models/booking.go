package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/voyacore/tourbook-backend/pkg/db/types"
	"github.com/voyacore/tourbook-backend/pkg/enums"
)

// Booking is the persisted result of a priced reservation. Monetary fields are
// rounded to two decimals at write time; the pricing pipeline itself works on
// unrounded values.
type Booking struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:idx_bookings_tenant_reference"`
	TourID    uuid.UUID `gorm:"column:tour_id;type:uuid;not null;index"`
	Reference string    `gorm:"column:reference;not null;uniqueIndex:idx_bookings_tenant_reference"`

	OptionType  string          `gorm:"column:option_type;not null"`
	OptionLabel string          `gorm:"column:option_label;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`

	Adults     int       `gorm:"column:adults;not null"`
	Children   int       `gorm:"column:children;not null"`
	Infants    int       `gorm:"column:infants;not null"`
	TravelDate time.Time `gorm:"column:travel_date;not null"`

	Subtotal       decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DiscountAmount decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null"`
	TotalPrice     decimal.Decimal     `gorm:"column:total_price;type:numeric(12,2);not null"`
	AppliedOffer   *types.AppliedOffer `gorm:"column:applied_offer;type:jsonb"`

	Status  enums.BookingStatus  `gorm:"column:status;not null;default:pending"`
	Channel enums.BookingChannel `gorm:"column:channel;not null;default:web"`

	CustomerName  string `gorm:"column:customer_name;not null"`
	CustomerEmail string `gorm:"column:customer_email;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
