package pricing

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/enums"
)

func TestPriceOfferPercentage(t *testing.T) {
	offer := models.Offer{Type: enums.OfferTypePercentage, DiscountValue: decimal.NewFromInt(20)}
	subtotal := decimal.NewFromInt(250)

	price, err := PriceOffer(offer, subtotal, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.DiscountAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected discount 50, got %s", price.DiscountAmount)
	}
	if !price.DiscountedPrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected total 200, got %s", price.DiscountedPrice)
	}
}

func TestPriceOfferFixedCappedAtSubtotal(t *testing.T) {
	offer := models.Offer{Type: enums.OfferTypeFixed, DiscountValue: decimal.NewFromInt(1000)}
	subtotal := decimal.NewFromInt(250)

	price, err := PriceOffer(offer, subtotal, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.DiscountAmount.Equal(subtotal) {
		t.Fatalf("expected discount capped at %s, got %s", subtotal, price.DiscountAmount)
	}
	if !price.DiscountedPrice.IsZero() {
		t.Fatalf("expected zero total, got %s", price.DiscountedPrice)
	}
}

func TestPriceOfferGroupGatedByMinGuests(t *testing.T) {
	offer := models.Offer{
		Type:          enums.OfferTypeGroup,
		DiscountValue: decimal.NewFromInt(15),
		MinGuests:     4,
	}
	subtotal := decimal.NewFromInt(400)

	below, err := PriceOffer(offer, subtotal, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !below.DiscountAmount.IsZero() {
		t.Fatalf("expected no discount below minimum, got %s", below.DiscountAmount)
	}

	atThreshold, err := PriceOffer(offer, subtotal, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !atThreshold.DiscountAmount.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected discount 60 at threshold, got %s", atThreshold.DiscountAmount)
	}
}

func TestPriceOfferMalformed(t *testing.T) {
	tests := []struct {
		name  string
		offer models.Offer
	}{
		{
			name:  "unknown type",
			offer: models.Offer{ID: uuid.New(), Type: "mystery", DiscountValue: decimal.NewFromInt(10)},
		},
		{
			name:  "group without minimum",
			offer: models.Offer{ID: uuid.New(), Type: enums.OfferTypeGroup, DiscountValue: decimal.NewFromInt(10)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PriceOffer(tc.offer, decimal.NewFromInt(100), 5)
			var malformed *MalformedOfferError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedOfferError, got %v", err)
			}
		})
	}
}

func TestPriceOfferDiscountInvariant(t *testing.T) {
	subtotals := []decimal.Decimal{
		decimal.Zero,
		decimal.RequireFromString("0.01"),
		decimal.NewFromInt(250),
		decimal.RequireFromString("9999.99"),
	}
	values := []decimal.Decimal{
		decimal.NewFromInt(-500),
		decimal.NewFromInt(-1),
		decimal.Zero,
		decimal.RequireFromString("0.5"),
		decimal.NewFromInt(50),
		decimal.NewFromInt(100),
		decimal.NewFromInt(150),
		decimal.NewFromInt(100000),
	}
	offerTypes := []enums.OfferType{
		enums.OfferTypePercentage,
		enums.OfferTypeFixed,
		enums.OfferTypeEarlyBird,
		enums.OfferTypeLastMinute,
	}

	for _, offerType := range offerTypes {
		for _, subtotal := range subtotals {
			for _, value := range values {
				offer := models.Offer{Type: offerType, DiscountValue: value}
				price, err := PriceOffer(offer, subtotal, 2)
				if err != nil {
					t.Fatalf("%s value=%s subtotal=%s: unexpected error: %v", offerType, value, subtotal, err)
				}
				if price.DiscountAmount.IsNegative() {
					t.Fatalf("%s value=%s subtotal=%s: negative discount %s", offerType, value, subtotal, price.DiscountAmount)
				}
				if price.DiscountAmount.GreaterThan(subtotal) {
					t.Fatalf("%s value=%s subtotal=%s: discount %s exceeds subtotal", offerType, value, subtotal, price.DiscountAmount)
				}
				if !price.DiscountedPrice.Equal(subtotal.Sub(price.DiscountAmount)) {
					t.Fatalf("%s value=%s subtotal=%s: price/discount mismatch", offerType, value, subtotal)
				}
			}
		}
	}
}
