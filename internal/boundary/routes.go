package boundary

import (
	"net/http"

	"github.com/CivicLink/Civic311-Backend/internal/middleware"
	"github.com/CivicLink/Civic311-Backend/internal/permission"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(checker permission.Checker) http.Handler {
	r := chi.NewRouter()

	r.Get("/{jurisdictionID}", GetBoundaryHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(checker, permission.EditCatalog))
		r.Put("/{jurisdictionID}", PutBoundaryHandler)
	})

	return r
}
