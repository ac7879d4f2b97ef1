package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BookingOption is a purchasable variant of a tour (e.g. standard vs private).
// Price is the unit price for one adult-equivalent guest.
type BookingOption struct {
	Type          string           `json:"type"`
	Label         string           `json:"label"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
}

// BookingOptions maps to a jsonb column holding the tour's option list.
type BookingOptions []BookingOption

// Find returns the option with the given type, or nil.
func (o BookingOptions) Find(optionType string) *BookingOption {
	for i := range o {
		if strings.EqualFold(o[i].Type, optionType) {
			return &o[i]
		}
	}
	return nil
}

// Value implements driver.Valuer.
func (o BookingOptions) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	payload, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("booking options: marshal: %w", err)
	}
	return string(payload), nil
}

// Scan implements sql.Scanner.
func (o *BookingOptions) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	raw, err := jsonbBytes(value)
	if err != nil {
		return fmt.Errorf("booking options: %w", err)
	}
	if len(raw) == 0 {
		*o = BookingOptions{}
		return nil
	}
	return json.Unmarshal(raw, o)
}

func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb source %T", value)
	}
}
