package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/voyacore/tourbook-backend/api/middleware"
	"github.com/voyacore/tourbook-backend/api/responses"
	"github.com/voyacore/tourbook-backend/api/validators"
	"github.com/shopspring/decimal"
	"github.com/voyacore/tourbook-backend/internal/bookings"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/db/types"
	"github.com/voyacore/tourbook-backend/pkg/enums"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
	"github.com/voyacore/tourbook-backend/pkg/logger"
)

const travelDateLayout = "2006-01-02"

type bookingResponse struct {
	ID             uuid.UUID           `json:"id"`
	Reference      string              `json:"reference"`
	TourID         uuid.UUID           `json:"tour_id"`
	OptionType     string              `json:"option_type"`
	OptionLabel    string              `json:"option_label"`
	UnitPrice      decimal.Decimal     `json:"unit_price"`
	Adults         int                 `json:"adults"`
	Children       int                 `json:"children"`
	Infants        int                 `json:"infants"`
	TravelDate     string              `json:"travel_date"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TotalPrice     decimal.Decimal     `json:"total_price"`
	AppliedOffer   *types.AppliedOffer `json:"applied_offer,omitempty"`
	Status         string              `json:"status"`
	Channel        string              `json:"channel"`
	CustomerName   string              `json:"customer_name"`
	CustomerEmail  string              `json:"customer_email"`
	CreatedAt      time.Time           `json:"created_at"`
}

func newBookingResponse(b *models.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID,
		Reference:      b.Reference,
		TourID:         b.TourID,
		OptionType:     b.OptionType,
		OptionLabel:    b.OptionLabel,
		UnitPrice:      b.UnitPrice,
		Adults:         b.Adults,
		Children:       b.Children,
		Infants:        b.Infants,
		TravelDate:     b.TravelDate.Format(travelDateLayout),
		Subtotal:       b.Subtotal,
		DiscountAmount: b.DiscountAmount,
		TotalPrice:     b.TotalPrice,
		AppliedOffer:   b.AppliedOffer,
		Status:         b.Status.String(),
		Channel:        b.Channel.String(),
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CreatedAt:      b.CreatedAt,
	}
}

type bookingQuotePayload struct {
	TourID     string `json:"tour_id" validate:"required,uuid"`
	OptionType string `json:"option_type" validate:"required"`
	TravelDate string `json:"travel_date" validate:"required"`
	Adults     int    `json:"adults" validate:"min=0"`
	Children   int    `json:"children" validate:"min=0"`
	Infants    int    `json:"infants" validate:"min=0"`
}

type bookingCreatePayload struct {
	bookingQuotePayload
	CustomerName  string `json:"customer_name" validate:"required,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	Channel       string `json:"channel"`
}

func (p bookingQuotePayload) toInput(tenantID uuid.UUID) (bookings.QuoteInput, error) {
	tourID, err := uuid.Parse(p.TourID)
	if err != nil {
		return bookings.QuoteInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tour id")
	}
	travelDate, err := time.Parse(travelDateLayout, p.TravelDate)
	if err != nil {
		return bookings.QuoteInput{}, pkgerrors.New(pkgerrors.CodeValidation, "travel_date must be formatted as YYYY-MM-DD")
	}
	return bookings.QuoteInput{
		TenantID:   tenantID,
		TourID:     tourID,
		OptionType: strings.TrimSpace(p.OptionType),
		TravelDate: travelDate,
		Adults:     p.Adults,
		Children:   p.Children,
		Infants:    p.Infants,
	}, nil
}

func resolveTenant(r *http.Request) (uuid.UUID, error) {
	raw := middleware.TenantIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant context missing")
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant id")
	}
	return tenantID, nil
}

// BookingQuote prices a party against the tenant's live offers without
// persisting anything.
func BookingQuote(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		tenantID, err := resolveTenant(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload bookingQuotePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput(tenantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Quote(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// BookingCreate persists a booking at the quoted price. The same handler
// serves the storefront and the admin back office; the tenant comes from the
// request context either way.
func BookingCreate(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		tenantID, err := resolveTenant(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload bookingCreatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput(tenantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		booking, err := svc.Create(ctx, bookings.CreateInput{
			QuoteInput:    input,
			CustomerName:  payload.CustomerName,
			CustomerEmail: payload.CustomerEmail,
			Channel:       enums.BookingChannel(strings.TrimSpace(payload.Channel)),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithBookingReference(ctx, booking.Reference)
			logg.Info(ctx, "booking created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newBookingResponse(booking))
	}
}

// BookingDetail looks up a booking by its human-facing reference.
func BookingDetail(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		tenantID, err := resolveTenant(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reference := strings.TrimSpace(chi.URLParam(r, "reference"))
		if reference == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "booking reference required"))
			return
		}

		booking, err := svc.GetByReference(ctx, tenantID, reference)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newBookingResponse(booking))
	}
}
