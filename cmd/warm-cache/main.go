package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/evyataryagoni/whereami/internal/cache"
	"github.com/evyataryagoni/whereami/internal/config"
	"github.com/evyataryagoni/whereami/internal/provider"
	"github.com/go-playground/validator/v10"
)

// This tool pre-fetches geolocation results for a list of IPs into the
// configured cache, so a fresh deployment starts warm.
// Usage: go run cmd/warm-cache/main.go <ip-list-file>
//
// The file holds one IP per line; blank lines, comments, and lines that are
// not valid IPs are skipped. Only successful lookups are stored - the same
// rule the server applies.
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <ip-list-file>", os.Args[0])
	}

	fmt.Println("🔄 Warming geolocation cache...")

	// Load configuration
	appConfig := config.Load()

	// Connect to the configured cache (typically Redis, so the warm data
	// survives server restarts of individual instances)
	resultCache, err := cache.New(cache.Config{
		Type:          appConfig.CacheType,
		MaxEntries:    appConfig.CacheMaxEntries,
		TTL:           time.Duration(appConfig.CacheTTL) * time.Second,
		RedisAddr:     appConfig.RedisAddr,
		RedisPassword: appConfig.RedisPassword,
		RedisDB:       appConfig.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer resultCache.Close()

	fmt.Printf("✅ Connected to %s cache\n", appConfig.CacheType)

	// Read and warm
	warmed, skipped, failed := warmFromFile(os.Args[1], resultCache, appConfig)

	fmt.Printf("✅ Done: %d warmed, %d skipped, %d failed\n", warmed, skipped, failed)
}

// warmFromFile looks up every valid IP in the file and caches successes
func warmFromFile(path string, resultCache cache.Cache, appConfig *config.Config) (warmed, skipped, failed int) {
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open IP list: %v", err)
	}
	defer file.Close()

	timeout := time.Duration(appConfig.HTTPTimeout) * time.Second
	geolocator := provider.NewIPAPIClient(appConfig.GeoAPIBaseURL, timeout, nil)
	validate := validator.New()
	ctx := context.Background()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		ip := strings.TrimSpace(scanner.Text())
		if ip == "" || strings.HasPrefix(ip, "#") {
			continue
		}

		// Unlike the request path, the warm list is operator input - lines
		// that are not real IPs would only burn API quota, so filter them
		if err := validate.Var(ip, "required,ip"); err != nil {
			fmt.Printf("⚠️  Skipping invalid IP %q\n", ip)
			skipped++
			continue
		}

		if _, ok := resultCache.Get(ip); ok {
			skipped++
			continue
		}

		result, err := geolocator.Lookup(ctx, ip)
		if err != nil || result.Error {
			fmt.Printf("⚠️  Lookup failed for %s\n", ip)
			failed++
			continue
		}

		resultCache.Set(ip, result)
		warmed++
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read IP list: %v", err)
	}

	return warmed, skipped, failed
}
