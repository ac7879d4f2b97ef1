package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/internal/pricing"
	"github.com/voyacore/tourbook-backend/pkg/config"
	pkgdb "github.com/voyacore/tourbook-backend/pkg/db"
	"github.com/voyacore/tourbook-backend/pkg/db/models"
	"github.com/voyacore/tourbook-backend/pkg/db/types"
	"github.com/voyacore/tourbook-backend/pkg/enums"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
	"github.com/voyacore/tourbook-backend/pkg/metrics"
	"gorm.io/gorm"
)

const referenceConstraint = "idx_bookings_tenant_reference"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type tenantLoader interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

type tourLoader interface {
	FindByIDForTenant(ctx context.Context, tenantID, tourID uuid.UUID) (*models.Tour, error)
}

type offerStore interface {
	ListActiveForTenant(ctx context.Context, tenantID uuid.UUID, at time.Time) ([]models.Offer, error)
	IncrementUsage(ctx context.Context, tx *gorm.DB, tenantID, offerID uuid.UUID) (bool, error)
}

type referenceSource interface {
	Generate(ctx context.Context, tenantID uuid.UUID, tenantName string) string
}

// Service defines the booking operations exposed to the API layer.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error)
	Create(ctx context.Context, input CreateInput) (*models.Booking, error)
	GetByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*models.Booking, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	tenants tenantLoader
	tours   tourLoader
	offers  offerStore
	refs    referenceSource
	metrics *metrics.PricingMetrics
	windows pricing.Windows
	now     func() time.Time
}

// NewService builds the booking service with the required collaborators.
func NewService(
	repo Repository,
	tx txRunner,
	tenants tenantLoader,
	tours tourLoader,
	offers offerStore,
	refs referenceSource,
	m *metrics.PricingMetrics,
	cfg config.PricingConfig,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if tenants == nil {
		return nil, fmt.Errorf("tenant loader required")
	}
	if tours == nil {
		return nil, fmt.Errorf("tour loader required")
	}
	if offers == nil {
		return nil, fmt.Errorf("offer store required")
	}
	if refs == nil {
		return nil, fmt.Errorf("reference generator required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		tenants: tenants,
		tours:   tours,
		offers:  offers,
		refs:    refs,
		metrics: m,
		windows: pricing.Windows{
			EarlyBirdLeadDays:    cfg.EarlyBirdLeadDays,
			LastMinuteWindowDays: cfg.LastMinuteWindowDays,
		},
		now: time.Now,
	}, nil
}

type pricedRequest struct {
	tenant *models.Tenant
	tour   *models.Tour
	option *types.BookingOption
	quote  *pricing.Quote
}

// price runs the shared load-and-quote path for previews and creations. It is
// side-effect free so quotes never touch offer usage counters.
func (s *service) price(ctx context.Context, input QuoteInput) (*pricedRequest, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if input.TourID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tour id required")
	}
	if strings.TrimSpace(input.OptionType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "option type required")
	}
	if input.TravelDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "travel date required")
	}

	tenant, err := s.tenants.FindActiveByID(ctx, input.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}

	tour, err := s.tours.FindByIDForTenant(ctx, input.TenantID, input.TourID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tour not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tour")
	}

	option := tour.Options.Find(input.OptionType)
	if option == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("booking option %q is not available on this tour", input.OptionType))
	}

	now := s.now()
	candidates, err := s.offers.ListActiveForTenant(ctx, input.TenantID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active offers")
	}

	quote, err := pricing.ComputeQuote(
		option.Price,
		pricing.GuestCounts{Adults: input.Adults, Children: input.Children, Infants: input.Infants},
		candidates,
		pricing.Inputs{
			TourID:     input.TourID,
			OptionType: option.Type,
			TravelDate: input.TravelDate,
			Now:        now,
			Windows:    s.windows,
		},
	)
	if err != nil {
		return nil, err
	}

	return &pricedRequest{tenant: tenant, tour: tour, option: option, quote: quote}, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error) {
	priced, err := s.price(ctx, input)
	if err != nil {
		s.metrics.IncQuote("rejected")
		return nil, err
	}
	s.metrics.IncQuote("quoted")
	return quoteResult(priced.quote), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Booking, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}
	channel := input.Channel
	if channel == "" {
		channel = enums.BookingChannelWeb
	}
	if !channel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid booking channel %q", channel))
	}

	priced, err := s.price(ctx, input.QuoteInput)
	if err != nil {
		s.metrics.IncQuote("rejected")
		return nil, err
	}
	quote := priced.quote

	reference := s.refs.Generate(ctx, priced.tenant.ID, priced.tenant.Name)
	booking := &models.Booking{
		TenantID:       input.TenantID,
		TourID:         input.TourID,
		Reference:      reference,
		OptionType:     priced.option.Type,
		OptionLabel:    priced.option.Label,
		UnitPrice:      priced.option.Price.Round(2),
		Adults:         input.Adults,
		Children:       input.Children,
		Infants:        input.Infants,
		TravelDate:     input.TravelDate,
		Subtotal:       quote.Subtotal.Round(2),
		DiscountAmount: quote.DiscountAmount.Round(2),
		TotalPrice:     quote.Total.Round(2),
		Status:         enums.BookingStatusPending,
		Channel:        channel,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerEmail:  strings.TrimSpace(input.CustomerEmail),
	}
	if quote.AppliedOffer != nil {
		snapshot := *quote.AppliedOffer
		snapshot.DiscountAmount = snapshot.DiscountAmount.Round(2)
		booking.AppliedOffer = &snapshot
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.Create(ctx, booking); err != nil {
			if !pkgdb.IsUniqueViolation(err, referenceConstraint) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
			}
			// The optimistic pre-check lost a race; one regenerated
			// reference resolves it for all practical purposes.
			booking.Reference = s.refs.Generate(ctx, priced.tenant.ID, priced.tenant.Name)
			if _, err := repo.Create(ctx, booking); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking after reference retry")
			}
		}

		if quote.SelectedOffer != nil {
			applied, err := s.offers.IncrementUsage(ctx, tx, input.TenantID, quote.SelectedOffer.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment offer usage")
			}
			if !applied {
				return pkgerrors.New(pkgerrors.CodeConflict, "offer is no longer available")
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.IncQuote("failed")
		return nil, err
	}

	s.metrics.IncQuote("created")
	if booking.AppliedOffer != nil {
		s.metrics.IncOfferApplied(booking.AppliedOffer.Type)
	}
	return booking, nil
}

func (s *service) GetByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*models.Booking, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if strings.TrimSpace(reference) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking reference required")
	}

	booking, err := s.repo.FindByReference(ctx, tenantID, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return booking, nil
}

func quoteResult(quote *pricing.Quote) *QuoteResult {
	result := &QuoteResult{
		Subtotal:       quote.Subtotal.Round(2),
		DiscountAmount: quote.DiscountAmount.Round(2),
		TotalPrice:     quote.Total.Round(2),
	}
	if quote.AppliedOffer != nil {
		snapshot := *quote.AppliedOffer
		snapshot.DiscountAmount = snapshot.DiscountAmount.Round(2)
		result.AppliedOffer = &snapshot
	}
	return result
}
