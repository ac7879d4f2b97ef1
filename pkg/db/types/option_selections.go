package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TourOptionSelection restricts an offer to specific booking options on one tour.
// AllOptions true means every option on the tour qualifies.
type TourOptionSelection struct {
	TourID          uuid.UUID `json:"tour_id"`
	SelectedOptions []string  `json:"selected_options,omitempty"`
	AllOptions      bool      `json:"all_options"`
}

// Covers reports whether the selection admits the given option type.
func (s TourOptionSelection) Covers(optionType string) bool {
	if s.AllOptions {
		return true
	}
	for _, candidate := range s.SelectedOptions {
		if strings.EqualFold(candidate, optionType) {
			return true
		}
	}
	return false
}

// TourOptionSelections maps to a jsonb column on the offers table.
type TourOptionSelections []TourOptionSelection

// ForTour returns the selection entry for the given tour, or nil when the offer
// places no option restriction on it.
func (s TourOptionSelections) ForTour(tourID uuid.UUID) *TourOptionSelection {
	for i := range s {
		if s[i].TourID == tourID {
			return &s[i]
		}
	}
	return nil
}

// Value implements driver.Valuer.
func (s TourOptionSelections) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("tour option selections: marshal: %w", err)
	}
	return string(payload), nil
}

// Scan implements sql.Scanner.
func (s *TourOptionSelections) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, err := jsonbBytes(value)
	if err != nil {
		return fmt.Errorf("tour option selections: %w", err)
	}
	if len(raw) == 0 {
		*s = TourOptionSelections{}
		return nil
	}
	return json.Unmarshal(raw, s)
}
