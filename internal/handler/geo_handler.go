package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evyataryagoni/whereami/internal/metrics"
	"github.com/evyataryagoni/whereami/internal/models"
	"github.com/evyataryagoni/whereami/internal/resolver"
	"github.com/evyataryagoni/whereami/internal/service"
	"github.com/evyataryagoni/whereami/internal/web"
)

// Placeholders shown when the client IP cannot be determined
const (
	unknownIPPlaceholder = "Unable to fetch public IP"
	msgResolutionError   = "Could not determine your IP address."
)

// GeoHandler handles HTTP requests for the geolocation page and the v1
// lookup API. It deals with HTTP concerns only - resolution and lookup
// logic live in the resolver and service layers.
type GeoHandler struct {
	resolver *resolver.Resolver
	service  *service.GeoService
	renderer *web.Renderer
	metrics  *metrics.Metrics // optional, can be nil
}

// NewGeoHandler creates a new handler with the given collaborators
func NewGeoHandler(res *resolver.Resolver, svc *service.GeoService, renderer *web.Renderer, m *metrics.Metrics) *GeoHandler {
	return &GeoHandler{
		resolver: res,
		service:  svc,
		renderer: renderer,
		metrics:  m,
	}
}

// Index handles GET /
//
// Flow:
//  1. Resolve the client IP. On failure, render the page with a
//     placeholder IP and a resolution error - no geolocation call.
//  2. Otherwise look up geolocation (cache first) and render the result.
//
// No retries anywhere; every failure is terminal for the request and
// surfaces as a displayed error.
func (h *GeoHandler) Index(w http.ResponseWriter, r *http.Request) {
	var data models.PageData

	ip, err := h.resolver.Resolve(r)
	if err != nil {
		h.countResolution("failed")
		data = models.PageData{
			IPAddress: unknownIPPlaceholder,
			Location:  models.Failure(models.FailureResolve, msgResolutionError),
		}
	} else {
		h.countResolution("ok")
		data = models.PageData{
			IPAddress: ip,
			Location:  h.service.Lookup(r.Context(), ip),
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderIndex(w, data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// Lookup handles GET /v1/lookup?ip=<ip>
// @Summary      Geolocate an IP address
// @Description  Look up geolocation details (country, region, city, zip, coordinates, ISP) for a given IP address
// @Tags         Geolocation
// @Produce      json
// @Param        ip   query      string  true  "IP address (IPv4 or IPv6)"  example(8.8.8.8)
// @Success      200  {object}   models.GeoResult
// @Failure      400  {object}   models.GeoResult      "Missing parameter or upstream rejection"
// @Failure      502  {object}   models.GeoResult      "Geolocation service unreachable or broken"
// @Router       /v1/lookup [get]
func (h *GeoHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")

	if ip == "" {
		h.respondError(w, http.StatusBadRequest, "Missing 'ip' query parameter")
		return
	}

	result := h.service.Lookup(r.Context(), ip)

	h.respondJSON(w, statusFor(result), result)
}

// statusFor maps a lookup outcome to an HTTP status code
func statusFor(result *models.GeoResult) int {
	if !result.Error {
		return http.StatusOK
	}

	switch result.Kind {
	case models.FailureUpstream:
		// The service itself rejected the query (private range,
		// reserved range, invalid query)
		return http.StatusBadRequest
	default:
		// Transport, status, or decode failure reaching the service
		return http.StatusBadGateway
	}
}

// respondJSON writes a JSON response with the given status code
func (h *GeoHandler) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing left to do but report
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondError writes an error response with consistent formatting
func (h *GeoHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, models.ErrorResponse{Error: message})
}

func (h *GeoHandler) countResolution(outcome string) {
	if h.metrics != nil {
		h.metrics.IPResolutionsTotal.WithLabelValues(outcome).Inc()
	}
}
