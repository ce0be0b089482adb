package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/evyataryagoni/whereami/internal/logger"
)

// IPifyClient is an IPDiscoverer backed by an ipify-style service
// (GET <base>/?format=json -> {"ip": "<string>"}).
type IPifyClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewIPifyClient creates an IP discovery client.
//
// Parameters:
//   - baseURL: service base URL (e.g., "https://api64.ipify.org")
//   - timeout: bound on each outbound request
//   - log: logger (optional, can be nil)
func NewIPifyClient(baseURL string, timeout time.Duration, log *logger.Logger) *IPifyClient {
	if log == nil {
		log = logger.NewDefault()
	}
	return &IPifyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.WithProvider("ipify"),
	}
}

// DiscoverIP implements the IPDiscoverer interface.
// Any transport, status, or decode failure is an error - the caller decides
// what a failed discovery means for the request.
func (c *IPifyClient) DiscoverIP(ctx context.Context) (string, error) {
	endpoint := c.baseURL + "/?format=json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build IP discovery request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("IP discovery request failed")
		return "", fmt.Errorf("failed to fetch public IP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("IP discovery service error status")
		return "", fmt.Errorf("IP discovery service returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode IP discovery response: %w", err)
	}

	if body.IP == "" {
		return "", fmt.Errorf("IP discovery response contained no IP")
	}

	return body.IP, nil
}
