package catalog

import (
	"net/http"

	"github.com/CivicLink/Civic311-Backend/internal/middleware"
	"github.com/CivicLink/Civic311-Backend/internal/permission"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(checker permission.Checker) http.Handler {
	r := chi.NewRouter()

	r.Get("/jurisdictions", ListJurisdictionsHandler)
	r.Get("/services", ListServicesHandler)
	r.Get("/services/{serviceCode}", ServiceDefinitionHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(checker, permission.EditCatalog))
		r.Post("/jurisdictions", CreateJurisdictionHandler)
		r.Post("/services", CreateServiceHandler)
		r.Post("/services/{serviceCode}/attributes", CreateAttributeHandler)
		r.Patch("/services/{serviceCode}/attributes/{code}", UpdateAttributeHandler)
		r.Delete("/services/{serviceCode}/attributes/{code}", DeleteAttributeHandler)
	})

	return r
}
