package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/CivicLink/Civic311-Backend/internal/permission"
	"github.com/CivicLink/Civic311-Backend/internal/utils"
)

var allowed = map[string]struct{}{
	"http://localhost:5173":            {},
	"http://localhost:5174":            {},
	"https://portal-dev.civiclink.dev": {},
	"https://portal.civiclink.dev":     {},
	"https://admin-dev.civiclink.dev":  {},
	"https://admin.civiclink.dev":      {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		w.Header().Set("Access-Control-Expose-Headers", "Retry-After, Cache-Control")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BearerTokenMiddleware copies the Authorization bearer token, when present,
// into the request context. It never rejects: anonymous submission is a
// first-class path and permission checks downstream fail closed anyway.
func BearerTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			ctx := context.WithValue(r.Context(), utils.ContextBearerTokenKey, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission guards a route behind the external authorization
// service. The jurisdiction is read from the jurisdiction_id query
// parameter; a missing token is a 401 and a failed remote check a 403.
func RequirePermission(checker permission.Checker, perms []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := utils.GetBearerTokenFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized: missing bearer token", http.StatusUnauthorized)
				return
			}

			jurisdictionID := r.URL.Query().Get("jurisdiction_id")
			if jurisdictionID == "" {
				http.Error(w, "jurisdiction_id is required", http.StatusBadRequest)
				return
			}

			if !checker.HasAny(r.Context(), token, jurisdictionID, perms) {
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
