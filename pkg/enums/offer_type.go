package enums

import "fmt"

// OfferType distinguishes how a promotional offer discounts a booking.
type OfferType string

const (
	OfferTypePercentage OfferType = "percentage"
	OfferTypeFixed      OfferType = "fixed"
	OfferTypeEarlyBird  OfferType = "early_bird"
	OfferTypeLastMinute OfferType = "last_minute"
	OfferTypeGroup      OfferType = "group"
)

var validOfferTypes = []OfferType{
	OfferTypePercentage,
	OfferTypeFixed,
	OfferTypeEarlyBird,
	OfferTypeLastMinute,
	OfferTypeGroup,
}

// String implements fmt.Stringer.
func (o OfferType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OfferType.
func (o OfferType) IsValid() bool {
	for _, candidate := range validOfferTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOfferType converts raw input into an OfferType.
func ParseOfferType(value string) (OfferType, error) {
	for _, candidate := range validOfferTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid offer type %q", value)
}
