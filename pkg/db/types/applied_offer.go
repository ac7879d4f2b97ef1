package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppliedOffer is the point-in-time snapshot of the offer that discounted a
// booking. It is written once at booking time and never updated, so later edits
// to the offer cannot retroactively change a past booking's receipt.
type AppliedOffer struct {
	OfferID        uuid.UUID       `json:"offer_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	EndDate        time.Time       `json:"end_date"`
}

// Value implements driver.Valuer.
func (a AppliedOffer) Value() (driver.Value, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("applied offer: marshal: %w", err)
	}
	return string(payload), nil
}

// Scan implements sql.Scanner.
func (a *AppliedOffer) Scan(value interface{}) error {
	if value == nil {
		*a = AppliedOffer{}
		return nil
	}
	raw, err := jsonbBytes(value)
	if err != nil {
		return fmt.Errorf("applied offer: %w", err)
	}
	if len(raw) == 0 {
		*a = AppliedOffer{}
		return nil
	}
	return json.Unmarshal(raw, a)
}
