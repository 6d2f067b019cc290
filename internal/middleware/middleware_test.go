package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CivicLink/Civic311-Backend/internal/middleware"
	"github.com/CivicLink/Civic311-Backend/internal/utils"
)

// mockChecker implements permission.Checker without any network dependency.
type mockChecker struct {
	allow     bool
	gotToken  string
	gotJurisd string
	gotPerms  []string
}

func (m *mockChecker) HasAny(ctx context.Context, token, jurisdictionID string, perms []string) bool {
	m.gotToken = token
	m.gotJurisd = jurisdictionID
	m.gotPerms = perms
	return m.allow
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestBearerTokenMiddleware_InjectsToken verifies that a well-formed
// Authorization header lands in the request context.
func TestBearerTokenMiddleware_InjectsToken(t *testing.T) {
	const want = "abc123"

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := utils.GetBearerTokenFromContext(r.Context())
		if !ok {
			http.Error(w, "token not in context", http.StatusInternalServerError)
			return
		}
		if got != want {
			http.Error(w, "wrong token in context: "+got, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.BearerTokenMiddleware(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+want)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
}

// TestBearerTokenMiddleware_NoHeader verifies that anonymous requests pass
// through with no token in context.
func TestBearerTokenMiddleware_NoHeader(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetBearerTokenFromContext(r.Context()); ok {
			http.Error(w, "unexpected token in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.BearerTokenMiddleware(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

// TestRequirePermission_MissingToken verifies 401 when no bearer token was
// extracted upstream.
func TestRequirePermission_MissingToken(t *testing.T) {
	mw := middleware.RequirePermission(&mockChecker{allow: true}, []string{"ADMIN_EDIT_TENANT"})
	handler := mw(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin?jurisdiction_id=town.gov", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestRequirePermission_MissingJurisdiction verifies 400 when the
// jurisdiction_id query parameter is absent.
func TestRequirePermission_MissingJurisdiction(t *testing.T) {
	mw := middleware.RequirePermission(&mockChecker{allow: true}, []string{"ADMIN_EDIT_TENANT"})
	handler := middleware.BearerTokenMiddleware(mw(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "jurisdiction_id") {
		t.Errorf("expected body to mention jurisdiction_id, got: %q", rec.Body.String())
	}
}

// TestRequirePermission_Denied verifies that a failed remote check yields 403.
func TestRequirePermission_Denied(t *testing.T) {
	checker := &mockChecker{allow: false}
	mw := middleware.RequirePermission(checker, []string{"ADMIN_EDIT_TENANT"})
	handler := middleware.BearerTokenMiddleware(mw(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/admin?jurisdiction_id=town.gov", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

// TestRequirePermission_Allowed verifies the happy path and that the checker
// receives the token and jurisdiction from the request.
func TestRequirePermission_Allowed(t *testing.T) {
	checker := &mockChecker{allow: true}
	mw := middleware.RequirePermission(checker, []string{"ADMIN_EDIT_TENANT"})
	handler := middleware.BearerTokenMiddleware(mw(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/admin?jurisdiction_id=town.gov", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d; body: %s", rec.Code, rec.Body.String())
	}
	if checker.gotToken != "tok" {
		t.Errorf("checker saw token %q, want %q", checker.gotToken, "tok")
	}
	if checker.gotJurisd != "town.gov" {
		t.Errorf("checker saw jurisdiction %q, want %q", checker.gotJurisd, "town.gov")
	}
}
