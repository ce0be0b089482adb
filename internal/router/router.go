package router

import (
	"net/http"

	_ "github.com/evyataryagoni/whereami/docs" // Swagger docs
	"github.com/evyataryagoni/whereami/internal/handler"
	"github.com/evyataryagoni/whereami/internal/logger"
	"github.com/evyataryagoni/whereami/internal/metrics"
	custommiddleware "github.com/evyataryagoni/whereami/internal/middleware"
	v1 "github.com/evyataryagoni/whereami/internal/router/v1"
	"github.com/evyataryagoni/whereami/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter creates and configures the Chi router with all middleware
// and routes.
//
// Parameters:
//   - geoHandler: the page and lookup handler
//   - m: metrics collector
//   - log: structured logger
//
// Returns:
//   - chi.Router: configured router ready to use
func SetupRouter(geoHandler *handler.GeoHandler, m *metrics.Metrics, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	// Global middleware - these run on every request.
	// Order matters: RequestID first, then logging, then metrics.
	r.Use(middleware.RequestID)
	r.Use(custommiddleware.LoggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.MetricsMiddleware(m))

	// The page itself
	r.Get("/", geoHandler.Index)

	// Embedded static assets for the page
	r.Handle("/static/*", web.StaticHandler())

	// Mount v1 API routes under /v1 prefix
	r.Mount("/v1", v1.SetupRoutes(geoHandler))

	// Health check endpoint - used by load balancers and monitoring
	r.Get("/health", healthCheckHandler)

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI endpoint - API documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// healthCheckHandler returns 200 OK if the service is running
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
