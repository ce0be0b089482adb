package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/evyataryagoni/whereami/internal/cache"
	"github.com/evyataryagoni/whereami/internal/config"
	"github.com/evyataryagoni/whereami/internal/handler"
	"github.com/evyataryagoni/whereami/internal/logger"
	"github.com/evyataryagoni/whereami/internal/metrics"
	"github.com/evyataryagoni/whereami/internal/provider"
	"github.com/evyataryagoni/whereami/internal/resolver"
	"github.com/evyataryagoni/whereami/internal/router"
	"github.com/evyataryagoni/whereami/internal/service"
	"github.com/evyataryagoni/whereami/internal/web"
)

// @title           whereami API
// @version         1.0
// @description     Resolves the visitor's IP address and serves geolocation details for it

// @contact.name   Evyatar Yagoni
// @contact.email  evyatar@example.com

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /
func main() {
	// Load and validate configuration
	appConfig := config.Load()

	// Initialize components
	appLogger := setupLogger(appConfig)

	if err := appConfig.Validate(); err != nil {
		appLogger.Fatal().Err(err).Msg("Invalid configuration")
	}

	resultCache := setupCache(appConfig, appLogger)
	metricsCollector := setupMetrics(appLogger)

	// Outbound providers
	timeout := time.Duration(appConfig.HTTPTimeout) * time.Second
	geolocator := provider.NewIPAPIClient(appConfig.GeoAPIBaseURL, timeout, appLogger)
	discoverer := provider.NewIPifyClient(appConfig.IPDiscoveryURL, timeout, appLogger)

	// Build application layers
	geoService := service.NewGeoService(resultCache, geolocator, metricsCollector, appLogger)
	defer geoService.Close()

	ipResolver := resolver.New(discoverer, appLogger)

	renderer, err := web.NewRenderer()
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to load page template")
	}

	geoHandler := handler.NewGeoHandler(ipResolver, geoService, renderer, metricsCollector)
	appRouter := router.SetupRouter(geoHandler, metricsCollector, appLogger)

	// Start server
	startServer(appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting whereami server...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("cache_type", appConfig.CacheType).
		Int("cache_max_entries", appConfig.CacheMaxEntries).
		Int("cache_ttl_seconds", appConfig.CacheTTL).
		Str("geo_api_url", appConfig.GeoAPIBaseURL).
		Str("ip_discovery_url", appConfig.IPDiscoveryURL).
		Msg("Configuration loaded")

	return appLogger
}

// setupCache initializes the result cache based on configuration.
// Supports in-memory and Redis backends.
func setupCache(appConfig *config.Config, log *logger.Logger) cache.Cache {
	resultCache, err := cache.New(cache.Config{
		Type:          appConfig.CacheType,
		MaxEntries:    appConfig.CacheMaxEntries,
		TTL:           time.Duration(appConfig.CacheTTL) * time.Second,
		RedisAddr:     appConfig.RedisAddr,
		RedisPassword: appConfig.RedisPassword,
		RedisDB:       appConfig.RedisDB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize result cache")
	}

	fmt.Printf("✅ %s cache initialized\n", appConfig.CacheType)
	return resultCache
}

// setupMetrics initializes the Prometheus metrics collector
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	metricsCollector := metrics.New()
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// startServer starts the HTTP server and blocks
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	serverAddr := ":" + appConfig.Port

	log.Info().
		Str("port", appConfig.Port).
		Str("page", "http://localhost:"+appConfig.Port+"/").
		Str("api_endpoint", "http://localhost:"+appConfig.Port+"/v1/lookup?ip=<ip>").
		Str("health_check", "http://localhost:"+appConfig.Port+"/health").
		Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
		Str("swagger", "http://localhost:"+appConfig.Port+"/swagger/index.html").
		Msg("Server is running")

	log.Fatal().Err(http.ListenAndServe(serverAddr, appRouter)).Msg("Server failed")
}
