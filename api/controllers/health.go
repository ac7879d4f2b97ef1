package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/voyacore/tourbook-backend/api/responses"
	"github.com/voyacore/tourbook-backend/pkg/config"
	"github.com/voyacore/tourbook-backend/pkg/db"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
	"github.com/voyacore/tourbook-backend/pkg/logger"
	pkgredis "github.com/voyacore/tourbook-backend/pkg/redis"
)

const (
	envHeader        = "X-TourBook-Env"
	readinessTimeout = 5 * time.Second
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency and reports per-check state. A
// single unreachable dependency fails readiness so the instance is pulled
// from rotation.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		var failures error

		if dbP == nil {
			checks["database"] = "not configured"
			failures = multierr.Append(failures, fmt.Errorf("database: not configured"))
		} else if err := dbP.Ping(ctx); err != nil {
			checks["database"] = "unreachable"
			failures = multierr.Append(failures, fmt.Errorf("database: %w", err))
		} else {
			checks["database"] = "ok"
		}

		if redisP == nil {
			checks["redis"] = "not configured"
			failures = multierr.Append(failures, fmt.Errorf("redis: not configured"))
		} else if err := redisP.Ping(ctx); err != nil {
			checks["redis"] = "unreachable"
			failures = multierr.Append(failures, fmt.Errorf("redis: %w", err))
		} else {
			checks["redis"] = "ok"
		}

		if failures != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "service not ready").
				WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}
