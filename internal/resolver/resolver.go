package resolver

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/evyataryagoni/whereami/internal/logger"
	"github.com/evyataryagoni/whereami/internal/provider"
)

// Resolver determines the requesting client's IP address from request
// metadata, falling back to an external discovery service when the
// connection is local.
//
// Resolution order:
//  1. First comma-separated value of X-Forwarded-For (set by proxies)
//  2. The connection's remote address, port stripped
//  3. If the candidate is the loopback address, ask the discovery service
//
// No IP syntax validation is performed - downstream components tolerate
// malformed input.
type Resolver struct {
	discoverer provider.IPDiscoverer
	logger     *logger.Logger
}

// New creates a resolver using the given discovery provider
func New(discoverer provider.IPDiscoverer, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Resolver{
		discoverer: discoverer,
		logger:     log.WithComponent("Resolver"),
	}
}

// Resolve returns the client IP for the given request.
// The only outbound call happens on the loopback fallback path; any failure
// there means the IP cannot be determined and an error is returned.
func (r *Resolver) Resolve(req *http.Request) (string, error) {
	candidate := candidateIP(req)

	if !isLoopback(candidate) {
		return candidate, nil
	}

	// Running without a reverse proxy: the connection comes from localhost,
	// so ask an external service what our public IP is
	r.logger.Debug().Str("candidate", candidate).Msg("Loopback address detected, discovering public IP")

	ip, err := r.discoverer.DiscoverIP(req.Context())
	if err != nil {
		r.logger.Warn().Err(err).Msg("Could not fetch public IP")
		return "", fmt.Errorf("could not determine client IP: %w", err)
	}

	return ip, nil
}

// candidateIP extracts the client address from the request metadata
func candidateIP(req *http.Request) string {
	// If the app is behind a proxy, the real IP is the first entry of
	// X-Forwarded-For (format: "client, proxy1, proxy2")
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	// Otherwise use the direct remote address, stripping the port.
	// Falls back to the raw RemoteAddr if it has no port.
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

// isLoopback matches the loopback literals by string comparison.
// A local Go listener reports "::1" rather than "127.0.0.1", so both
// spellings count. Deliberately not net.ParseIP - candidates are passed
// through unvalidated.
func isLoopback(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1"
}
