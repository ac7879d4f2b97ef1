package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voyacore/tourbook-backend/api/controllers"
	"github.com/voyacore/tourbook-backend/api/middleware"
	"github.com/voyacore/tourbook-backend/internal/bookings"
	"github.com/voyacore/tourbook-backend/internal/offers"
	"github.com/voyacore/tourbook-backend/internal/tours"
	"github.com/voyacore/tourbook-backend/pkg/config"
	"github.com/voyacore/tourbook-backend/pkg/db"
	"github.com/voyacore/tourbook-backend/pkg/enums"
	"github.com/voyacore/tourbook-backend/pkg/logger"
	pkgredis "github.com/voyacore/tourbook-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	bookingService bookings.Service,
	toursRepo *tours.Repository,
	offersRepo *offers.Repository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Storefront surface. The tenant is declared by header, and booking
	// creation replays through the idempotency layer.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.TenantContext(logg))
		r.Use(middleware.Idempotency(redisClient, cfg.Booking.IdempotencyTTL, logg))

		r.Get("/tours", controllers.TourList(toursRepo, logg))
		r.Post("/bookings/quote", controllers.BookingQuote(bookingService, logg))
		r.Post("/bookings", controllers.BookingCreate(bookingService, logg))
		r.Get("/bookings/{reference}", controllers.BookingDetail(bookingService, logg))
	})

	// Back office. The tenant comes from the access token, never a header.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleAdmin.String(), logg))
		r.Use(middleware.Idempotency(redisClient, cfg.Booking.IdempotencyTTL, logg))

		r.Get("/offers", controllers.AdminOfferList(offersRepo, logg))
		r.Post("/bookings", controllers.BookingCreate(bookingService, logg))
	})

	return r
}
