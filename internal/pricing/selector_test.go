package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/enums"
)

func selectorInputs(tourID uuid.UUID) Inputs {
	return Inputs{
		TourID:      tourID,
		OptionType:  "standard",
		TravelDate:  time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		TotalGuests: 3,
		Now:         time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Windows:     DefaultWindows(),
	}
}

func TestSelectBestOfferLargestDiscountWins(t *testing.T) {
	tourID := uuid.New()
	subtotal := decimal.NewFromInt(250)

	fixed := models.Offer{
		ID:            uuid.New(),
		Type:          enums.OfferTypeFixed,
		DiscountValue: decimal.NewFromInt(1000),
	}
	percentage := models.Offer{
		ID:            uuid.New(),
		Type:          enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	}

	got := SelectBestOffer([]models.Offer{percentage, fixed}, subtotal, selectorInputs(tourID))
	if got == nil {
		t.Fatal("expected a selection")
	}
	if got.Offer.ID != fixed.ID {
		t.Fatalf("expected the capped fixed offer to win, got %s", got.Offer.ID)
	}
	if !got.DiscountAmount.Equal(subtotal) {
		t.Fatalf("expected discount %s, got %s", subtotal, got.DiscountAmount)
	}
	if !got.DiscountedPrice.IsZero() {
		t.Fatalf("expected zero total, got %s", got.DiscountedPrice)
	}
}

func TestSelectBestOfferTieBreakPriority(t *testing.T) {
	tourID := uuid.New()
	subtotal := decimal.NewFromInt(250)

	low := models.Offer{
		ID:            uuid.New(),
		Type:          enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(20),
		Priority:      5,
	}
	high := models.Offer{
		ID:            uuid.New(),
		Type:          enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(20),
		Priority:      10,
	}

	got := SelectBestOffer([]models.Offer{low, high}, subtotal, selectorInputs(tourID))
	if got == nil {
		t.Fatal("expected a selection")
	}
	if got.Offer.ID != high.ID {
		t.Fatalf("expected priority 10 offer, got priority %d", got.Offer.Priority)
	}
}

func TestSelectBestOfferTieBreakSmallestID(t *testing.T) {
	tourID := uuid.New()
	subtotal := decimal.NewFromInt(100)

	a := models.Offer{
		ID:            uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Type:          enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	}
	b := models.Offer{
		ID:            uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		Type:          enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	}

	got := SelectBestOffer([]models.Offer{b, a}, subtotal, selectorInputs(tourID))
	if got == nil {
		t.Fatal("expected a selection")
	}
	if got.Offer.ID != a.ID {
		t.Fatalf("expected the smaller id to win, got %s", got.Offer.ID)
	}
}

func TestSelectBestOfferDeterministicUnderReorder(t *testing.T) {
	tourID := uuid.New()
	subtotal := decimal.NewFromInt(300)

	offers := []models.Offer{
		{ID: uuid.New(), Type: enums.OfferTypePercentage, DiscountValue: decimal.NewFromInt(15)},
		{ID: uuid.New(), Type: enums.OfferTypeFixed, DiscountValue: decimal.NewFromInt(40)},
		{ID: uuid.New(), Type: enums.OfferTypePercentage, DiscountValue: decimal.NewFromInt(5), Priority: 100},
	}
	reversed := []models.Offer{offers[2], offers[1], offers[0]}

	first := SelectBestOffer(offers, subtotal, selectorInputs(tourID))
	second := SelectBestOffer(reversed, subtotal, selectorInputs(tourID))
	if first == nil || second == nil {
		t.Fatal("expected selections")
	}
	if first.Offer.ID != second.Offer.ID {
		t.Fatalf("selection depends on input order: %s vs %s", first.Offer.ID, second.Offer.ID)
	}
	if !first.DiscountAmount.Equal(second.DiscountAmount) {
		t.Fatalf("discount depends on input order: %s vs %s", first.DiscountAmount, second.DiscountAmount)
	}
}

func TestSelectBestOfferNeverSelectsExcludedTour(t *testing.T) {
	tourID := uuid.New()
	subtotal := decimal.NewFromInt(200)

	excluded := models.Offer{
		ID:            uuid.New(),
		Type:          enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(50),
		ExcludedTours: pq.StringArray{tourID.String()},
	}

	if got := SelectBestOffer([]models.Offer{excluded}, subtotal, selectorInputs(tourID)); got != nil {
		t.Fatalf("excluded offer must never be selected, got %s", got.Offer.ID)
	}
}

func TestSelectBestOfferSkipsMalformedOffers(t *testing.T) {
	tourID := uuid.New()
	subtotal := decimal.NewFromInt(200)

	offers := []models.Offer{
		{ID: uuid.New(), Type: "mystery", DiscountValue: decimal.NewFromInt(90)},
		{ID: uuid.New(), Type: enums.OfferTypePercentage, DiscountValue: decimal.NewFromInt(10)},
	}

	got := SelectBestOffer(offers, subtotal, selectorInputs(tourID))
	if got == nil {
		t.Fatal("well-formed offer should still be selected")
	}
	if got.Offer.Type != enums.OfferTypePercentage {
		t.Fatalf("expected the percentage offer, got %s", got.Offer.Type)
	}
}

func TestSelectBestOfferNoneApplicable(t *testing.T) {
	tourID := uuid.New()
	in := selectorInputs(tourID)
	in.TotalGuests = 3

	group := models.Offer{
		ID:            uuid.New(),
		Type:          enums.OfferTypeGroup,
		DiscountValue: decimal.NewFromInt(15),
		MinGuests:     4,
	}

	if got := SelectBestOffer([]models.Offer{group}, decimal.NewFromInt(300), in); got != nil {
		t.Fatalf("group offer below threshold must be excluded, got %s", got.Offer.ID)
	}
}
