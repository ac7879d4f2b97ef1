package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/voyacore/tourbook-backend/pkg/db/types"
	"github.com/voyacore/tourbook-backend/pkg/enums"
)

// Offer is a tenant-scoped promotional rule.
//
// StartDate/EndDate gate whether the promotion is currently running; they are
// enforced by the active-offer query, not by the pricing engine. Travel-date
// constraints (early bird / last minute) are a separate question answered per
// booking by the applicability predicates.
type Offer struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID      uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name          string          `gorm:"column:name;not null"`
	Type          enums.OfferType `gorm:"column:type;not null"`
	DiscountValue decimal.Decimal `gorm:"column:discount_value;type:numeric(12,2);not null"`
	StartDate     time.Time       `gorm:"column:start_date;not null"`
	EndDate       time.Time       `gorm:"column:end_date;not null"`
	Priority      int             `gorm:"column:priority;not null;default:0"`
	UsageLimit    *int            `gorm:"column:usage_limit"`
	UsedCount     int             `gorm:"column:used_count;not null;default:0"`

	// MinGuests gates group offers; zero means no minimum.
	MinGuests int `gorm:"column:min_guests;not null;default:0"`
	// MinAdvanceDays overrides the configured early-bird lead time; zero = default.
	MinAdvanceDays int `gorm:"column:min_advance_days;not null;default:0"`
	// MaxAdvanceDays overrides the configured last-minute window; zero = default.
	MaxAdvanceDays int `gorm:"column:max_advance_days;not null;default:0"`

	ApplicableTours      pq.StringArray             `gorm:"column:applicable_tours;type:text[]"`
	ExcludedTours        pq.StringArray             `gorm:"column:excluded_tours;type:text[]"`
	TourOptionSelections types.TourOptionSelections `gorm:"column:tour_option_selections;type:jsonb"`

	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
