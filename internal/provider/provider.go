package provider

import (
	"context"
	"errors"

	"github.com/evyataryagoni/whereami/internal/models"
)

// Geolocator looks up geolocation details for an IP address.
// The narrow interface lets tests substitute fakes without network access.
type Geolocator interface {
	// Lookup queries the geolocation service for the given IP.
	// An upstream "fail" status is not a Go error - it comes back as a
	// failure GeoResult. The sentinel errors below cover everything else.
	Lookup(ctx context.Context, ip string) (*models.GeoResult, error)
}

// IPDiscoverer finds the caller's public IP address via an external service.
// Used when the detected client address is the local loopback.
type IPDiscoverer interface {
	DiscoverIP(ctx context.Context) (string, error)
}

// Sentinel errors distinguishing failure kinds at the transport boundary.
// Callers match with errors.Is and choose differentiated messaging.
var (
	// ErrNetwork indicates a transport-level failure (connection error, timeout)
	ErrNetwork = errors.New("network error contacting geolocation service")

	// ErrServiceStatus indicates a non-2xx response from the service
	ErrServiceStatus = errors.New("geolocation service returned an error status")

	// ErrDecode indicates a response body that could not be decoded
	ErrDecode = errors.New("failed to decode geolocation response")
)
