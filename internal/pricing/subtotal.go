package pricing

import (
	"github.com/shopspring/decimal"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
)

var two = decimal.NewFromInt(2)

// GuestCounts carries the party composition for one booking. Infants are
// never priced but still count toward the group-size total.
type GuestCounts struct {
	Adults   int
	Children int
	Infants  int
}

// Total returns the full party size including infants.
func (g GuestCounts) Total() int {
	return g.Adults + g.Children + g.Infants
}

// ComputeSubtotal derives the pre-discount tour fare from the option's unit
// price: adults pay full price, children pay exactly half, infants are free.
// Intermediate arithmetic stays unrounded; rounding happens at persistence.
func ComputeSubtotal(unitPrice decimal.Decimal, guests GuestCounts) (decimal.Decimal, error) {
	if guests.Adults < 0 || guests.Children < 0 || guests.Infants < 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "guest counts must not be negative")
	}
	if guests.Total() < 1 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "at least one guest is required")
	}

	adults := unitPrice.Mul(decimal.NewFromInt(int64(guests.Adults)))
	children := unitPrice.Div(two).Mul(decimal.NewFromInt(int64(guests.Children)))
	return adults.Add(children), nil
}
