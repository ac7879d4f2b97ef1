package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/db/types"
)

// Quote is the full pricing outcome for one booking request. Amounts are
// unrounded; callers round to 2dp when persisting or serializing.
type Quote struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	AppliedOffer   *types.AppliedOffer
	SelectedOffer  *models.Offer
}

// ComputeQuote runs the whole pipeline: subtotal from unit price and guests,
// then best-offer selection over the candidate set. It is side-effect free and
// safe to call speculatively for price previews.
func ComputeQuote(unitPrice decimal.Decimal, guests GuestCounts, offers []models.Offer, in Inputs) (*Quote, error) {
	subtotal, err := ComputeSubtotal(unitPrice, guests)
	if err != nil {
		return nil, err
	}

	in.TotalGuests = guests.Total()
	selection := SelectBestOffer(offers, subtotal, in)
	if selection == nil {
		return &Quote{
			Subtotal:       subtotal,
			DiscountAmount: decimal.Zero,
			Total:          subtotal,
		}, nil
	}

	offer := selection.Offer
	return &Quote{
		Subtotal:       subtotal,
		DiscountAmount: selection.DiscountAmount,
		Total:          selection.DiscountedPrice,
		SelectedOffer:  &offer,
		AppliedOffer: &types.AppliedOffer{
			OfferID:        offer.ID,
			Name:           offer.Name,
			Type:           offer.Type.String(),
			DiscountAmount: selection.DiscountAmount,
			DiscountValue:  offer.DiscountValue,
			EndDate:        offer.EndDate,
		},
	}, nil
}
