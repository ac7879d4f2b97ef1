package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
)

// Inputs bundles the booking context a selection run needs. Now is passed
// explicitly so the predicates stay pure and reproducible in tests.
type Inputs struct {
	TourID      uuid.UUID
	OptionType  string
	TravelDate  time.Time
	TotalGuests int
	Now         time.Time
	Windows     Windows
}

// Selection is the single offer chosen to discount a booking.
type Selection struct {
	Offer           models.Offer
	DiscountAmount  decimal.Decimal
	DiscountedPrice decimal.Decimal
}

// SelectBestOffer prices every applicable offer and picks the one with the
// largest discount (best for the customer). Ties break on higher priority,
// then on the lexicographically smallest offer id, so identical inputs always
// select the same offer regardless of input order. Malformed offers and
// zero-discount offers are dropped; selection never fails.
func SelectBestOffer(offers []models.Offer, subtotal decimal.Decimal, in Inputs) *Selection {
	var best *Selection

	for _, offer := range offers {
		if !IsApplicableToTourOption(offer, in.TourID, in.OptionType) {
			continue
		}
		if !IsApplicableByTravelDate(offer, in.TravelDate, in.Now, in.Windows) {
			continue
		}

		price, err := PriceOffer(offer, subtotal, in.TotalGuests)
		if err != nil {
			continue
		}
		if !price.DiscountAmount.IsPositive() {
			continue
		}

		candidate := &Selection{
			Offer:           offer,
			DiscountAmount:  price.DiscountAmount,
			DiscountedPrice: price.DiscountedPrice,
		}
		if best == nil || beats(candidate, best) {
			best = candidate
		}
	}

	return best
}

func beats(candidate, incumbent *Selection) bool {
	switch candidate.DiscountAmount.Cmp(incumbent.DiscountAmount) {
	case 1:
		return true
	case -1:
		return false
	}
	if candidate.Offer.Priority != incumbent.Offer.Priority {
		return candidate.Offer.Priority > incumbent.Offer.Priority
	}
	return candidate.Offer.ID.String() < incumbent.Offer.ID.String()
}
