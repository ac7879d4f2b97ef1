package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/enums"
)

const (
	defaultEarlyBirdLeadDays    = 30
	defaultLastMinuteWindowDays = 7
)

// Windows carries the tenant-level defaults for date-constrained offer types.
// Per-offer overrides (MinAdvanceDays / MaxAdvanceDays) take precedence.
type Windows struct {
	EarlyBirdLeadDays    int
	LastMinuteWindowDays int
}

// DefaultWindows returns the stock eligibility windows.
func DefaultWindows() Windows {
	return Windows{
		EarlyBirdLeadDays:    defaultEarlyBirdLeadDays,
		LastMinuteWindowDays: defaultLastMinuteWindowDays,
	}
}

func (w Windows) earlyBirdLead(offer models.Offer) int {
	if offer.MinAdvanceDays > 0 {
		return offer.MinAdvanceDays
	}
	if w.EarlyBirdLeadDays > 0 {
		return w.EarlyBirdLeadDays
	}
	return defaultEarlyBirdLeadDays
}

func (w Windows) lastMinuteWindow(offer models.Offer) int {
	if offer.MaxAdvanceDays > 0 {
		return offer.MaxAdvanceDays
	}
	if w.LastMinuteWindowDays > 0 {
		return w.LastMinuteWindowDays
	}
	return defaultLastMinuteWindowDays
}

// IsApplicableToTourOption reports whether the offer covers the booked
// (tour, option) pair. ExcludedTours short-circuits regardless of any other
// targeting; an empty ApplicableTours list means every tour qualifies; a
// tourOptionSelections entry narrows an otherwise-applicable offer to
// specific booking options on that tour.
func IsApplicableToTourOption(offer models.Offer, tourID uuid.UUID, optionType string) bool {
	id := tourID.String()

	for _, excluded := range offer.ExcludedTours {
		if excluded == id {
			return false
		}
	}

	if len(offer.ApplicableTours) > 0 {
		found := false
		for _, applicable := range offer.ApplicableTours {
			if applicable == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if selection := offer.TourOptionSelections.ForTour(tourID); selection != nil {
		return selection.Covers(optionType)
	}
	return true
}

// IsApplicableByTravelDate reports whether the offer covers the day the
// customer actually travels. This is independent of the offer's own
// StartDate/EndDate window, which gates whether the promotion is running at
// booking time and is enforced upstream by the active-offer query.
func IsApplicableByTravelDate(offer models.Offer, travelDate, now time.Time, windows Windows) bool {
	if travelDate.IsZero() {
		return false
	}

	switch offer.Type {
	case enums.OfferTypeEarlyBird:
		lead := time.Duration(windows.earlyBirdLead(offer)) * 24 * time.Hour
		return travelDate.Sub(now) >= lead
	case enums.OfferTypeLastMinute:
		gap := travelDate.Sub(now)
		window := time.Duration(windows.lastMinuteWindow(offer)) * 24 * time.Hour
		return gap >= 0 && gap <= window
	default:
		return true
	}
}
