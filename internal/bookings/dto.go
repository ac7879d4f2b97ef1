package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/pkg/db/types"
	"github.com/voyacore/tourbook-backend/pkg/enums"
)

// QuoteInput carries a price-preview request.
type QuoteInput struct {
	TenantID   uuid.UUID
	TourID     uuid.UUID
	OptionType string
	TravelDate time.Time
	Adults     int
	Children   int
	Infants    int
}

// CreateInput carries a full booking request; pricing follows the same path
// as a quote.
type CreateInput struct {
	QuoteInput
	CustomerName  string
	CustomerEmail string
	Channel       enums.BookingChannel
}

// QuoteResult is the pricing outcome handed back to callers, rounded to two
// decimals for serialization.
type QuoteResult struct {
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TotalPrice     decimal.Decimal     `json:"total_price"`
	AppliedOffer   *types.AppliedOffer `json:"applied_offer,omitempty"`
}
