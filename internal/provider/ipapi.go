package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evyataryagoni/whereami/internal/logger"
	"github.com/evyataryagoni/whereami/internal/models"
)

// defaultUpstreamMessage is returned when the service reports "fail"
// without a message of its own
const defaultUpstreamMessage = "Failed to get geolocation data."

// IPAPIClient is a Geolocator backed by the ip-api.com JSON endpoint
// (GET <base>/json/<ip>, no API key required).
type IPAPIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewIPAPIClient creates a geolocation client.
//
// Parameters:
//   - baseURL: service base URL (e.g., "http://ip-api.com")
//   - timeout: bound on each outbound request
//   - log: logger (optional, can be nil)
func NewIPAPIClient(baseURL string, timeout time.Duration, log *logger.Logger) *IPAPIClient {
	if log == nil {
		log = logger.NewDefault()
	}
	return &IPAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.WithProvider("ip-api"),
	}
}

// Lookup implements the Geolocator interface.
//
// Flow:
//  1. GET <base>/json/<ip>
//  2. Transport failure -> ErrNetwork
//  3. Non-2xx status -> ErrServiceStatus
//  4. Undecodable body -> ErrDecode
//  5. Decoded body with status "fail" -> failure GeoResult with the
//     service-provided message (no Go error)
//  6. Status "success" -> the record, passed through unmodified
//
// The IP is not validated here - malformed input is escaped into the path
// and the service answers with its own "invalid query" failure.
func (c *IPAPIClient) Lookup(ctx context.Context, ip string) (*models.GeoResult, error) {
	endpoint := fmt.Sprintf("%s/json/%s", c.baseURL, url.PathEscape(ip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("ip", ip).Msg("Geolocation request failed")
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Int("status", resp.StatusCode).Str("ip", ip).Msg("Geolocation service error status")
		return nil, fmt.Errorf("%w: HTTP %d", ErrServiceStatus, resp.StatusCode)
	}

	var result models.GeoResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warn().Err(err).Str("ip", ip).Msg("Undecodable geolocation response")
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// The service reports failures in-band (e.g., private or reserved
	// ranges) with status "fail" and a message field
	if result.Status != "success" {
		message := result.Message
		if message == "" {
			message = defaultUpstreamMessage
		}
		c.logger.Debug().Str("ip", ip).Str("message", message).Msg("Geolocation service reported failure")
		return models.Failure(models.FailureUpstream, message), nil
	}

	return &result, nil
}
