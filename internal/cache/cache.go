package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/evyataryagoni/whereami/internal/models"
)

// Cache maps client IP addresses to previously fetched geolocation results.
// Only successful results are ever stored; callers enforce that rule.
// Allows multiple implementations (memory, Redis) and easy testing with mocks.
type Cache interface {
	// Get returns the cached result for an IP and whether it was present
	Get(ip string) (*models.GeoResult, bool)

	// Set stores a result under the given IP (upsert)
	Set(ip string, result *models.GeoResult)

	// Close cleans up resources (connections, goroutines, etc.)
	Close() error
}

// Config holds configuration for creating a cache
type Config struct {
	Type       string        // "memory" or "redis"
	MaxEntries int           // 0 = unbounded (the default)
	TTL        time.Duration // 0 = entries never expire (the default)

	// Redis-specific config
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New creates a cache based on the configuration (factory pattern)
func New(cfg Config) (Cache, error) {
	cacheType := strings.ToLower(strings.TrimSpace(cfg.Type))

	switch cacheType {
	case "memory", "":
		// In-memory cache (good for single-server deployments)
		return NewMemoryCache(cfg.MaxEntries, cfg.TTL), nil

	case "redis":
		// Redis-backed cache (shared across instances)
		c, err := NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis cache: %w", err)
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown cache type: %s (supported: 'memory', 'redis')", cfg.Type)
	}
}
