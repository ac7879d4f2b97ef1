package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/voyacore/tourbook-backend/api/responses"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
	"github.com/voyacore/tourbook-backend/pkg/logger"
)

const tenantIDHeader = "X-Tenant-Id"

// TenantContext resolves the acting tenant from the X-Tenant-Id header and
// seeds the request context. Every storefront route is tenant-scoped, so a
// missing or malformed header fails fast.
func TenantContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(tenantIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Tenant-Id header required"))
				return
			}

			tenantID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Tenant-Id must be a valid uuid"))
				return
			}

			ctx := WithTenantID(r.Context(), tenantID.String())
			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenantID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
