package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestIPifyClient_DiscoverIP_Success tests a successful discovery
func TestIPifyClient_DiscoverIP_Success(t *testing.T) {
	var requestedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ip":"203.0.113.7"}`))
	}))
	defer server.Close()

	client := NewIPifyClient(server.URL, 2*time.Second, nil)

	ip, err := client.DiscoverIP(context.Background())

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ip != "203.0.113.7" {
		t.Errorf("expected IP '203.0.113.7', got '%s'", ip)
	}
	if requestedQuery != "format=json" {
		t.Errorf("expected query 'format=json', got '%s'", requestedQuery)
	}
}

// TestIPifyClient_DiscoverIP_Failures tests error paths
func TestIPifyClient_DiscoverIP_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "empty IP field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ip":""}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewIPifyClient(server.URL, 2*time.Second, nil)

			if _, err := client.DiscoverIP(context.Background()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// TestIPifyClient_DiscoverIP_NetworkError tests a transport-level failure
func TestIPifyClient_DiscoverIP_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewIPifyClient(server.URL, 2*time.Second, nil)

	if _, err := client.DiscoverIP(context.Background()); err == nil {
		t.Error("expected error for unreachable service, got nil")
	}
}
