package service

import (
	"context"
	"errors"
	"time"

	"github.com/evyataryagoni/whereami/internal/cache"
	"github.com/evyataryagoni/whereami/internal/logger"
	"github.com/evyataryagoni/whereami/internal/metrics"
	"github.com/evyataryagoni/whereami/internal/models"
	"github.com/evyataryagoni/whereami/internal/provider"
)

// Displayable failure messages. Each failure kind gets differentiated
// messaging so the page can tell a user what actually went wrong.
const (
	msgNetworkError = "Network error while fetching geolocation data."
	msgServiceError = "Service unavailable or invalid IP."
	msgDecodeError  = "Error processing geolocation data."
)

// GeoService orchestrates cache and geolocation provider for IP lookups.
// This is the service layer - it sits between handlers and the outbound
// provider.
//
// Responsibilities:
//   - Consult the cache before any network call
//   - Call the provider on a miss
//   - Convert every provider failure into a displayable GeoResult
//   - Cache successful results only
type GeoService struct {
	cache      cache.Cache         // Shared result cache (memory or Redis)
	geolocator provider.Geolocator // Outbound geolocation client
	metrics    *metrics.Metrics    // Metrics collector (optional, can be nil)
	logger     *logger.Logger      // Structured logger
}

// NewGeoService creates a new geolocation service.
//
// Parameters:
//   - c: any implementation of the Cache interface
//   - g: any implementation of the Geolocator interface
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewGeoService(c cache.Cache, g provider.Geolocator, m *metrics.Metrics, log *logger.Logger) *GeoService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &GeoService{
		cache:      c,
		geolocator: g,
		metrics:    m,
		logger:     log.WithComponent("GeoService"),
	}
}

// Lookup returns geolocation details for an IP address.
// It never returns a Go error: every failure is converted to a failure
// GeoResult with a human-readable message, scoped to this one lookup.
//
// Flow:
//  1. Cache hit -> return the cached result, no network call
//  2. Miss -> query the provider
//  3. Success -> cache the record, return it
//  4. Any failure -> return a failure result; failures are never cached,
//     so a persistently failing IP is re-fetched on every request
func (s *GeoService) Lookup(ctx context.Context, ip string) *models.GeoResult {
	if result, ok := s.cache.Get(ip); ok {
		s.logger.Debug().Str("ip", ip).Msg("Cache hit")
		s.countCache("hit")
		return result
	}
	s.countCache("miss")

	start := time.Now()
	result, err := s.geolocator.Lookup(ctx, ip)
	s.observeProvider(start, err)

	if err != nil {
		return s.failure(ip, err)
	}

	if result.Error {
		// The service itself reported failure (private range, reserved
		// range, invalid query). Not cached - and the message is the
		// service's own.
		s.logger.Info().Str("ip", ip).Str("message", result.Message).Msg("Geolocation lookup rejected upstream")
		s.countLookup("upstream_fail")
		return result
	}

	s.cache.Set(ip, result)
	s.logger.Info().
		Str("ip", ip).
		Str("city", result.City).
		Str("country", result.Country).
		Msg("Geolocation lookup successful")
	s.countLookup("success")

	return result
}

// failure maps a provider error to the matching displayable result
func (s *GeoService) failure(ip string, err error) *models.GeoResult {
	s.logger.Warn().Err(err).Str("ip", ip).Msg("Geolocation lookup failed")

	switch {
	case errors.Is(err, provider.ErrServiceStatus):
		s.countLookup("service_error")
		return models.Failure(models.FailureService, msgServiceError)

	case errors.Is(err, provider.ErrDecode):
		s.countLookup("decode_error")
		return models.Failure(models.FailureDecode, msgDecodeError)

	default:
		// Transport failures and anything unclassified
		s.countLookup("network_error")
		return models.Failure(models.FailureNetwork, msgNetworkError)
	}
}

func (s *GeoService) countLookup(result string) {
	if s.metrics != nil {
		s.metrics.GeoLookupsTotal.WithLabelValues(result).Inc()
	}
}

func (s *GeoService) countCache(result string) {
	if s.metrics != nil {
		s.metrics.GeoCacheResults.WithLabelValues(result).Inc()
	}
}

func (s *GeoService) observeProvider(start time.Time, err error) {
	if s.metrics == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.ProviderRequestsTotal.WithLabelValues("geolocation", status).Inc()
	s.metrics.ProviderRequestDuration.WithLabelValues("geolocation").Observe(time.Since(start).Seconds())
}

// Close cleans up resources.
// This will close the underlying cache (Redis connections, etc.).
func (s *GeoService) Close() error {
	return s.cache.Close()
}
