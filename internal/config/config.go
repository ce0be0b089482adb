package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Values come from environment variables (optionally via a .env file for
// local development) with sensible defaults for every field.
type Config struct {
	// Server configuration
	Port string `validate:"required,numeric"`

	// Logging
	LogLevel  string // debug, info, warn, error
	LogPretty bool   // pretty console output for development

	// Outbound services
	GeoAPIBaseURL  string `validate:"required,url"` // geolocation service, queried as <base>/json/<ip>
	IPDiscoveryURL string `validate:"required,url"` // "what is my IP" service, queried as <url>/?format=json
	HTTPTimeout    int    `validate:"gte=1"`        // outbound HTTP timeout in seconds

	// Cache configuration
	CacheType       string `validate:"oneof=memory redis"`
	CacheMaxEntries int    `validate:"gte=0"` // 0 = unbounded (the default behavior)
	CacheTTL        int    `validate:"gte=0"` // seconds, 0 = entries never expire

	// Redis configuration (used when CacheType == "redis")
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from environment variables with defaults.
// A missing .env file is not an error - in production the environment is
// set directly.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port: getEnv("PORT", "3000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		GeoAPIBaseURL:  getEnv("GEO_API_URL", "http://ip-api.com"),
		IPDiscoveryURL: getEnv("IP_DISCOVERY_URL", "https://api64.ipify.org"),
		HTTPTimeout:    getEnvAsInt("HTTP_TIMEOUT_SECONDS", 5),

		CacheType:       getEnv("CACHE_TYPE", "memory"),
		CacheMaxEntries: getEnvAsInt("CACHE_MAX_ENTRIES", 0),
		CacheTTL:        getEnvAsInt("CACHE_TTL_SECONDS", 0),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
	}
}

// Validate checks the loaded configuration against the struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer.
// Returns default if not set or invalid.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as a boolean.
// Returns default if not set or invalid.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
