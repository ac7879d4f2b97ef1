package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/voyacore/tourbook-backend/api/routes"
	"github.com/voyacore/tourbook-backend/internal/bookings"
	"github.com/voyacore/tourbook-backend/internal/offers"
	"github.com/voyacore/tourbook-backend/internal/tenants"
	"github.com/voyacore/tourbook-backend/internal/tours"
	"github.com/voyacore/tourbook-backend/pkg/config"
	"github.com/voyacore/tourbook-backend/pkg/db"
	"github.com/voyacore/tourbook-backend/pkg/logger"
	"github.com/voyacore/tourbook-backend/pkg/metrics"
	"github.com/voyacore/tourbook-backend/pkg/migrate"
	"github.com/voyacore/tourbook-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pricingMetrics := metrics.NewPricingMetrics(registry)

	bookingsRepo := bookings.NewRepository(dbClient.DB())
	tenantsRepo := tenants.NewRepository(dbClient.DB())
	toursRepo := tours.NewRepository(dbClient.DB())
	offersRepo := offers.NewRepository(dbClient.DB())
	referenceGen := bookings.NewReferenceGenerator(bookingsRepo, cfg.Booking, pricingMetrics)

	bookingService, err := bookings.NewService(
		bookingsRepo,
		dbClient,
		tenantsRepo,
		toursRepo,
		offersRepo,
		referenceGen,
		pricingMetrics,
		cfg.Pricing,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create booking service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			bookingService,
			toursRepo,
			offersRepo,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
