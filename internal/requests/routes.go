package requests

import (
	"net/http"

	"github.com/CivicLink/Civic311-Backend/internal/middleware"
	"github.com/CivicLink/Civic311-Backend/internal/permission"
	"github.com/go-chi/chi/v5"
)

// Perms is the permission checker consulted for visibility decisions.
var Perms permission.Checker

func SetupRoutes(checker permission.Checker) http.Handler {
	Perms = checker

	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.SubmissionRateLimit)
		r.Post("/", CreateRequestHandler)
	})

	r.Get("/", ListRequestsHandler)
	r.Get("/{requestID}", GetRequestHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(checker, permission.EditRequests))
		r.Patch("/{requestID}", UpdateRequestHandler)
	})

	return r
}
