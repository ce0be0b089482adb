package v1

import (
	"github.com/evyataryagoni/whereami/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all v1 API routes.
// Called by the main router to set up the /v1/* endpoints.
func SetupRoutes(geoHandler *handler.GeoHandler) chi.Router {
	r := chi.NewRouter()

	// Geolocation lookup endpoint
	// GET /v1/lookup?ip=<ip>
	r.Get("/lookup", geoHandler.Lookup)

	return r
}
