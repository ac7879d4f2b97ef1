package middleware

import (
	"net/http"
	"strings"

	"github.com/voyacore/tourbook-backend/api/responses"
	pkgAuth "github.com/voyacore/tourbook-backend/pkg/auth"
	"github.com/voyacore/tourbook-backend/pkg/config"
	pkgerrors "github.com/voyacore/tourbook-backend/pkg/errors"
	"github.com/voyacore/tourbook-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
// When the tenant context is already resolved, the token must belong to the
// same tenant.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if tenantID := TenantIDFromContext(r.Context()); tenantID != "" && tenantID != claims.TenantID.String() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "token does not match tenant"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithTenantID(ctx, claims.TenantID.String())
			ctx = withRole(ctx, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
					"tenant_id":  claims.TenantID.String(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
