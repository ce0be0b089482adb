package cache

import (
	"github.com/evyataryagoni/whereami/internal/models"
)

// MockCache is a test double for the Cache interface.
// It allows tests to inspect stored data and verify interactions.
type MockCache struct {
	// Data holds the mock data (IP address -> result mapping)
	Data map[string]*models.GeoResult

	// Track method calls for verification in tests
	GetCalls    []string
	SetCalls    []string
	CloseCalled bool

	// Control error scenarios
	CloseError error
}

// NewMockCache creates an empty mock cache
func NewMockCache() *MockCache {
	return &MockCache{
		Data:     map[string]*models.GeoResult{},
		GetCalls: []string{},
		SetCalls: []string{},
	}
}

// Get implements the Cache interface and tracks the call
func (m *MockCache) Get(ip string) (*models.GeoResult, bool) {
	m.GetCalls = append(m.GetCalls, ip)

	result, exists := m.Data[ip]
	return result, exists
}

// Set implements the Cache interface and tracks the call
func (m *MockCache) Set(ip string, result *models.GeoResult) {
	m.SetCalls = append(m.SetCalls, ip)
	m.Data[ip] = result
}

// Close implements the Cache interface
func (m *MockCache) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
