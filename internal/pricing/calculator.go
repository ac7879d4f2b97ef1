package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// MalformedOfferError marks an offer record that cannot be priced for its
// declared type. Callers exclude such offers from selection; the error never
// reaches the booking request.
type MalformedOfferError struct {
	OfferID uuid.UUID
	Reason  string
}

func (e *MalformedOfferError) Error() string {
	return fmt.Sprintf("malformed offer %s: %s", e.OfferID, e.Reason)
}

// OfferPrice is the outcome of pricing a single offer against a subtotal.
type OfferPrice struct {
	DiscountAmount  decimal.Decimal
	DiscountedPrice decimal.Decimal
}

// PriceOffer computes the discount one offer yields on the given subtotal.
// Every type upholds 0 <= DiscountAmount <= subtotal: percentage-style values
// are clamped to [0,100], fixed amounts are capped at the subtotal. Group
// offers yield zero below their minimum party size so the selector drops them
// instead of recording a no-op application.
func PriceOffer(offer models.Offer, subtotal decimal.Decimal, totalGuests int) (OfferPrice, error) {
	var discount decimal.Decimal

	switch offer.Type {
	case enums.OfferTypePercentage, enums.OfferTypeEarlyBird, enums.OfferTypeLastMinute:
		discount = percentageOf(subtotal, offer.DiscountValue)
	case enums.OfferTypeFixed:
		discount = offer.DiscountValue
		if discount.IsNegative() {
			discount = decimal.Zero
		}
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	case enums.OfferTypeGroup:
		if offer.MinGuests < 1 {
			return OfferPrice{}, &MalformedOfferError{OfferID: offer.ID, Reason: "group offer requires a minimum guest count"}
		}
		if totalGuests >= offer.MinGuests {
			discount = percentageOf(subtotal, offer.DiscountValue)
		}
	default:
		return OfferPrice{}, &MalformedOfferError{OfferID: offer.ID, Reason: fmt.Sprintf("unknown offer type %q", offer.Type)}
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	return OfferPrice{
		DiscountAmount:  discount,
		DiscountedPrice: subtotal.Sub(discount),
	}, nil
}

func percentageOf(subtotal, value decimal.Decimal) decimal.Decimal {
	pct := value
	if pct.IsNegative() {
		pct = decimal.Zero
	}
	if pct.GreaterThan(oneHundred) {
		pct = oneHundred
	}
	return subtotal.Mul(pct).Div(oneHundred)
}
