package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/voyacore/tourbook-backend/pkg/auth"
	"github.com/voyacore/tourbook-backend/pkg/config"
	"github.com/voyacore/tourbook-backend/pkg/enums"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "tourbook-test",
	ExpirationMinutes: 15,
}

func mintTestToken(t *testing.T, tenantID uuid.UUID, role enums.ActorRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		TenantID: tenantID,
		Role:     role,
		JTI:      uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsClaims(t *testing.T) {
	tenantID := uuid.New()
	token := mintTestToken(t, tenantID, enums.ActorRoleAdmin)

	var gotRole, gotTenant string
	handler := Auth(testJWTConfig, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = RoleFromContext(r.Context())
		gotTenant = TenantIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/offers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotRole != string(enums.ActorRoleAdmin) {
		t.Fatalf("expected admin role in context, got %q", gotRole)
	}
	if gotTenant != tenantID.String() {
		t.Fatalf("expected tenant %s in context, got %q", tenantID, gotTenant)
	}
}

func TestAuthRejectsMissingAndMalformedCredentials(t *testing.T) {
	handler := Auth(testJWTConfig, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	for name, header := range map[string]string{
		"missing":      "",
		"empty bearer": "Bearer ",
		"garbage":      "Bearer not-a-token",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/offers", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", name, resp.Code)
		}
	}
}

func TestAuthRejectsTenantMismatch(t *testing.T) {
	token := mintTestToken(t, uuid.New(), enums.ActorRoleAdmin)

	handler := Auth(testJWTConfig, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/offers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req = req.WithContext(WithTenantID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequireRoleBlocksNonAdmins(t *testing.T) {
	handler := RequireRole("admin", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/offers", nil)
	req = req.WithContext(withRole(req.Context(), "staff"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/offers", nil)
	req = req.WithContext(withRole(req.Context(), "admin"))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
