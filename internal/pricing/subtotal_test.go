package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
)

func TestComputeSubtotalChildrenHalfPrice(t *testing.T) {
	unit := decimal.NewFromInt(100)

	got, err := ComputeSubtotal(unit, GuestCounts{Adults: 2, Children: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected 250, got %s", got)
	}
}

func TestComputeSubtotalInfantsFree(t *testing.T) {
	unit := decimal.NewFromInt(80)

	withInfants, err := ComputeSubtotal(unit, GuestCounts{Adults: 1, Children: 1, Infants: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	without, err := ComputeSubtotal(unit, GuestCounts{Adults: 1, Children: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !withInfants.Equal(without) {
		t.Fatalf("infants must not change the subtotal: %s vs %s", withInfants, without)
	}
}

func TestComputeSubtotalInfantsOnlyParty(t *testing.T) {
	got, err := ComputeSubtotal(decimal.NewFromInt(50), GuestCounts{Infants: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("infant-only party should have a zero fare, got %s", got)
	}
}

func TestComputeSubtotalLinearity(t *testing.T) {
	unit := decimal.RequireFromString("33.33")
	for adults := 0; adults <= 4; adults++ {
		for children := 0; children <= 4; children++ {
			if adults+children == 0 {
				continue
			}
			got, err := ComputeSubtotal(unit, GuestCounts{Adults: adults, Children: children})
			if err != nil {
				t.Fatalf("a=%d c=%d: unexpected error: %v", adults, children, err)
			}
			want := unit.Mul(decimal.NewFromInt(int64(adults))).
				Add(unit.Div(decimal.NewFromInt(2)).Mul(decimal.NewFromInt(int64(children))))
			if !got.Equal(want) {
				t.Fatalf("a=%d c=%d: expected %s, got %s", adults, children, want, got)
			}
		}
	}
}

func TestComputeSubtotalRejectsEmptyParty(t *testing.T) {
	_, err := ComputeSubtotal(decimal.NewFromInt(100), GuestCounts{})
	if err == nil {
		t.Fatal("expected error for empty party")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestComputeSubtotalRejectsNegativeCounts(t *testing.T) {
	_, err := ComputeSubtotal(decimal.NewFromInt(100), GuestCounts{Adults: 2, Children: -1})
	if err == nil {
		t.Fatal("expected error for negative count")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
