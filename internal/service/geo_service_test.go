package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/evyataryagoni/whereami/internal/cache"
	"github.com/evyataryagoni/whereami/internal/models"
	"github.com/evyataryagoni/whereami/internal/provider"
)

func successRecord() *models.GeoResult {
	return &models.GeoResult{
		Status:     "success",
		Country:    "US",
		RegionName: "CA",
		City:       "Mountain View",
		Zip:        "94043",
		Lat:        37.4,
		Lon:        -122.1,
		ISP:        "Example ISP",
	}
}

// TestGeoService_Lookup_Success tests that a successful lookup returns the
// record unmodified and caches it under the queried IP
func TestGeoService_Lookup_Success(t *testing.T) {
	// Arrange
	mockCache := cache.NewMockCache()
	mockGeo := provider.NewMockGeolocator(successRecord())
	svc := NewGeoService(mockCache, mockGeo, nil, nil)

	// Act
	result := svc.Lookup(context.Background(), "8.8.8.8")

	// Assert
	if !result.Success() {
		t.Fatalf("expected success result, got %+v", result)
	}
	if result.Country != "US" || result.RegionName != "CA" || result.City != "Mountain View" {
		t.Errorf("record was modified: %+v", result)
	}
	if result.Zip != "94043" || result.Lat != 37.4 || result.Lon != -122.1 || result.ISP != "Example ISP" {
		t.Errorf("record was modified: %+v", result)
	}

	// Cached under the queried IP
	if len(mockCache.SetCalls) != 1 || mockCache.SetCalls[0] != "8.8.8.8" {
		t.Errorf("expected one cache Set for '8.8.8.8', got %v", mockCache.SetCalls)
	}
	if cached, ok := mockCache.Data["8.8.8.8"]; !ok || cached != result {
		t.Error("expected the returned record to be cached")
	}
}

// TestGeoService_Lookup_CacheHit tests that a warm cache suppresses the
// outbound call and returns the identical cached object
func TestGeoService_Lookup_CacheHit(t *testing.T) {
	mockCache := cache.NewMockCache()
	mockGeo := provider.NewMockGeolocator(successRecord())
	svc := NewGeoService(mockCache, mockGeo, nil, nil)

	first := svc.Lookup(context.Background(), "8.8.8.8")
	second := svc.Lookup(context.Background(), "8.8.8.8")

	// Exactly one outbound geolocation call across both lookups
	if len(mockGeo.LookupCalls) != 1 {
		t.Errorf("expected exactly 1 provider call, got %d", len(mockGeo.LookupCalls))
	}
	if first != second {
		t.Error("expected the identical cached object on the second lookup")
	}
}

// TestGeoService_Lookup_FailureMessages tests that each failure kind maps
// to its exact displayable message
func TestGeoService_Lookup_FailureMessages(t *testing.T) {
	tests := []struct {
		name            string
		providerErr     error
		providerResult  *models.GeoResult
		expectedKind    models.FailureKind
		expectedMessage string
	}{
		{
			name:            "network error",
			providerErr:     fmt.Errorf("%w: connection refused", provider.ErrNetwork),
			expectedKind:    models.FailureNetwork,
			expectedMessage: "Network error while fetching geolocation data.",
		},
		{
			name:            "service error status",
			providerErr:     fmt.Errorf("%w: HTTP 503", provider.ErrServiceStatus),
			expectedKind:    models.FailureService,
			expectedMessage: "Service unavailable or invalid IP.",
		},
		{
			name:            "decode error",
			providerErr:     fmt.Errorf("%w: unexpected EOF", provider.ErrDecode),
			expectedKind:    models.FailureDecode,
			expectedMessage: "Error processing geolocation data.",
		},
		{
			name:            "upstream fail passes the service message through",
			providerResult:  models.Failure(models.FailureUpstream, "private range"),
			expectedKind:    models.FailureUpstream,
			expectedMessage: "private range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := cache.NewMockCache()
			mockGeo := provider.NewMockGeolocator(tt.providerResult)
			mockGeo.Err = tt.providerErr
			svc := NewGeoService(mockCache, mockGeo, nil, nil)

			result := svc.Lookup(context.Background(), "192.168.0.1")

			if !result.Error {
				t.Fatalf("expected failure result, got %+v", result)
			}
			if result.Kind != tt.expectedKind {
				t.Errorf("expected kind '%s', got '%s'", tt.expectedKind, result.Kind)
			}
			if result.Message != tt.expectedMessage {
				t.Errorf("expected message '%s', got '%s'", tt.expectedMessage, result.Message)
			}

			// Failures are never cached
			if len(mockCache.SetCalls) != 0 {
				t.Errorf("expected no cache writes on failure, got %v", mockCache.SetCalls)
			}
		})
	}
}

// TestGeoService_Lookup_FailuresRefetch tests that repeated lookups on a
// persistently failing IP always re-fetch
func TestGeoService_Lookup_FailuresRefetch(t *testing.T) {
	mockCache := cache.NewMockCache()
	mockGeo := provider.NewMockGeolocator(nil)
	mockGeo.Err = fmt.Errorf("%w: connection refused", provider.ErrNetwork)
	svc := NewGeoService(mockCache, mockGeo, nil, nil)

	svc.Lookup(context.Background(), "203.0.113.9")
	svc.Lookup(context.Background(), "203.0.113.9")
	svc.Lookup(context.Background(), "203.0.113.9")

	if len(mockGeo.LookupCalls) != 3 {
		t.Errorf("expected 3 provider calls for a failing IP, got %d", len(mockGeo.LookupCalls))
	}
	if len(mockCache.SetCalls) != 0 {
		t.Errorf("expected no cache writes, got %v", mockCache.SetCalls)
	}
}

// TestGeoService_Close tests that closing the service closes the cache
func TestGeoService_Close(t *testing.T) {
	mockCache := cache.NewMockCache()
	svc := NewGeoService(mockCache, provider.NewMockGeolocator(successRecord()), nil, nil)

	if err := svc.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mockCache.CloseCalled {
		t.Error("expected the cache to be closed")
	}
}
