package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/voyacore/tourbook-backend/api/responses"
	"github.com/voyacore/tourbook-backend/internal/offers"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/db/types"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
	"github.com/voyacore/tourbook-backend/pkg/logger"
	"github.com/voyacore/tourbook-backend/pkg/pagination"
)

type offerResponse struct {
	ID             uuid.UUID                  `json:"id"`
	Name           string                     `json:"name"`
	Type           string                     `json:"type"`
	DiscountValue  decimal.Decimal            `json:"discount_value"`
	StartDate      time.Time                  `json:"start_date"`
	EndDate        time.Time                  `json:"end_date"`
	Priority       int                        `json:"priority"`
	UsageLimit     *int                       `json:"usage_limit,omitempty"`
	UsedCount      int                        `json:"used_count"`
	MinGuests      int                        `json:"min_guests,omitempty"`
	MinAdvanceDays int                        `json:"min_advance_days,omitempty"`
	MaxAdvanceDays int                        `json:"max_advance_days,omitempty"`
	Applicable     []string                   `json:"applicable_tours,omitempty"`
	Excluded       []string                   `json:"excluded_tours,omitempty"`
	Selections     types.TourOptionSelections `json:"tour_option_selections,omitempty"`
	IsActive       bool                       `json:"is_active"`
	CreatedAt      time.Time                  `json:"created_at"`
}

func newOfferResponse(o models.Offer) offerResponse {
	return offerResponse{
		ID:             o.ID,
		Name:           o.Name,
		Type:           o.Type.String(),
		DiscountValue:  o.DiscountValue,
		StartDate:      o.StartDate,
		EndDate:        o.EndDate,
		Priority:       o.Priority,
		UsageLimit:     o.UsageLimit,
		UsedCount:      o.UsedCount,
		MinGuests:      o.MinGuests,
		MinAdvanceDays: o.MinAdvanceDays,
		MaxAdvanceDays: o.MaxAdvanceDays,
		Applicable:     o.ApplicableTours,
		Excluded:       o.ExcludedTours,
		Selections:     o.TourOptionSelections,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
	}
}

type offerListResponse struct {
	Offers     []offerResponse `json:"offers"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// AdminOfferList pages through every offer the tenant has configured,
// exhausted and expired ones included.
func AdminOfferList(repo *offers.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer repository unavailable"))
			return
		}

		tenantID, err := resolveTenant(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit := 0
		if limitStr := strings.TrimSpace(r.URL.Query().Get("limit")); limitStr != "" {
			value, err := strconv.Atoi(limitStr)
			if err != nil || value <= 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			limit = value
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))
		if _, err := pagination.ParseCursor(cursor); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		items, next, err := repo.ListForTenant(ctx, tenantID, pagination.Params{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers"))
			return
		}

		resp := offerListResponse{Offers: make([]offerResponse, 0, len(items)), NextCursor: next}
		for _, item := range items {
			resp.Offers = append(resp.Offers, newOfferResponse(item))
		}
		responses.WriteSuccess(w, resp)
	}
}
