package resolver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evyataryagoni/whereami/internal/provider"
)

// TestResolver_Resolve_Passthrough tests that non-loopback candidates are
// returned unchanged without any outbound call
func TestResolver_Resolve_Passthrough(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		expected   string
	}{
		{
			name:       "remote address with port",
			remoteAddr: "203.0.113.7:54321",
			expected:   "203.0.113.7",
		},
		{
			name:       "remote address without port",
			remoteAddr: "203.0.113.7",
			expected:   "203.0.113.7",
		},
		{
			name:       "single forwarded value",
			forwarded:  "198.51.100.23",
			remoteAddr: "10.0.0.1:80",
			expected:   "198.51.100.23",
		},
		{
			name:       "forwarded chain takes first value",
			forwarded:  "198.51.100.23, 10.0.0.2, 10.0.0.3",
			remoteAddr: "10.0.0.1:80",
			expected:   "198.51.100.23",
		},
		{
			name:       "forwarded value is trimmed",
			forwarded:  "  198.51.100.23 , 10.0.0.2",
			remoteAddr: "10.0.0.1:80",
			expected:   "198.51.100.23",
		},
		{
			name:       "malformed candidate passed through unvalidated",
			forwarded:  "not-an-ip",
			remoteAddr: "10.0.0.1:80",
			expected:   "not-an-ip",
		},
		{
			name:       "IPv6 remote address",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange: a discoverer that must not be called
			discoverer := &provider.MockDiscoverer{IP: "203.0.113.99"}
			res := New(discoverer, nil)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			// Act
			ip, err := res.Resolve(req)

			// Assert
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if ip != tt.expected {
				t.Errorf("expected IP '%s', got '%s'", tt.expected, ip)
			}
			if discoverer.Calls != 0 {
				t.Errorf("expected no discovery calls, got %d", discoverer.Calls)
			}
		})
	}
}

// TestResolver_Resolve_LoopbackFallback tests that a loopback candidate
// triggers exactly one discovery call
func TestResolver_Resolve_LoopbackFallback(t *testing.T) {
	loopbacks := []string{"127.0.0.1:54321", "[::1]:54321"}

	for _, remoteAddr := range loopbacks {
		t.Run(remoteAddr, func(t *testing.T) {
			discoverer := &provider.MockDiscoverer{IP: "203.0.113.99"}
			res := New(discoverer, nil)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = remoteAddr

			ip, err := res.Resolve(req)

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if ip != "203.0.113.99" {
				t.Errorf("expected discovered IP '203.0.113.99', got '%s'", ip)
			}
			if discoverer.Calls != 1 {
				t.Errorf("expected exactly 1 discovery call, got %d", discoverer.Calls)
			}
		})
	}
}

// TestResolver_Resolve_LoopbackInForwardedHeader tests that a loopback
// forwarded value also falls back to discovery
func TestResolver_Resolve_LoopbackInForwardedHeader(t *testing.T) {
	discoverer := &provider.MockDiscoverer{IP: "203.0.113.99"}
	res := New(discoverer, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:80"
	req.Header.Set("X-Forwarded-For", "127.0.0.1")

	ip, err := res.Resolve(req)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ip != "203.0.113.99" {
		t.Errorf("expected discovered IP, got '%s'", ip)
	}
}

// TestResolver_Resolve_DiscoveryFailure tests that a failed discovery
// surfaces as a resolution error
func TestResolver_Resolve_DiscoveryFailure(t *testing.T) {
	discoverer := &provider.MockDiscoverer{Err: fmt.Errorf("service unreachable")}
	res := New(discoverer, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:54321"

	_, err := res.Resolve(req)

	if err == nil {
		t.Fatal("expected resolution error, got nil")
	}
	if discoverer.Calls != 1 {
		t.Errorf("expected exactly 1 discovery call, got %d", discoverer.Calls)
	}
}
