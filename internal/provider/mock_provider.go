package provider

import (
	"context"

	"github.com/evyataryagoni/whereami/internal/models"
)

// MockGeolocator is a test double for the Geolocator interface.
// It allows tests to control results and verify interactions.
type MockGeolocator struct {
	// Control behavior
	Result *models.GeoResult // Result to return from Lookup
	Err    error             // Error to return from Lookup, if any

	// Track method calls for verification in tests
	LookupCalls []string // List of IPs that Lookup() was called with
}

// NewMockGeolocator creates a mock geolocator returning the given result
func NewMockGeolocator(result *models.GeoResult) *MockGeolocator {
	return &MockGeolocator{
		Result:      result,
		LookupCalls: []string{},
	}
}

// Lookup implements the Geolocator interface and tracks the call
func (m *MockGeolocator) Lookup(_ context.Context, ip string) (*models.GeoResult, error) {
	m.LookupCalls = append(m.LookupCalls, ip)

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// MockDiscoverer is a test double for the IPDiscoverer interface
type MockDiscoverer struct {
	// Control behavior
	IP  string // IP to return from DiscoverIP
	Err error  // Error to return from DiscoverIP, if any

	// Track method calls for verification in tests
	Calls int // Number of times DiscoverIP() was called
}

// DiscoverIP implements the IPDiscoverer interface and tracks the call
func (m *MockDiscoverer) DiscoverIP(_ context.Context) (string, error) {
	m.Calls++

	if m.Err != nil {
		return "", m.Err
	}
	return m.IP, nil
}
