package models

// FailureKind classifies why a geolocation lookup failed.
// The kind never leaves the process - handlers use it to pick a status code.
type FailureKind string

const (
	FailureNetwork  FailureKind = "network"  // transport error reaching the geolocation service
	FailureService  FailureKind = "service"  // geolocation service answered with a non-2xx status
	FailureDecode   FailureKind = "decode"   // response body could not be decoded
	FailureUpstream FailureKind = "upstream" // geolocation service reported status "fail"
	FailureResolve  FailureKind = "resolve"  // client IP could not be determined
)

// GeoResult is the normalized outcome of a geolocation lookup.
// Field names and JSON tags follow the ip-api.com JSON endpoint, so a
// successful response decodes straight into this struct.
// A result is either a success record (Status == "success") or a failure
// record (Error == true with a displayable Message), never both.
type GeoResult struct {
	Status     string  `json:"status,omitempty"`     // "success" or "fail"
	Country    string  `json:"country,omitempty"`    // Country name
	RegionName string  `json:"regionName,omitempty"` // Region/state name
	City       string  `json:"city,omitempty"`       // City name
	Zip        string  `json:"zip,omitempty"`        // Postal code
	Lat        float64 `json:"lat,omitempty"`        // Latitude
	Lon        float64 `json:"lon,omitempty"`        // Longitude
	ISP        string  `json:"isp,omitempty"`        // Internet service provider

	// Failure fields
	Error   bool        `json:"error,omitempty"`   // True when the lookup did not produce a record
	Message string      `json:"message,omitempty"` // Human-readable failure message
	Kind    FailureKind `json:"-"`                 // Failure classification (not serialized)
}

// Failure constructs a failure GeoResult with the given kind and message
func Failure(kind FailureKind, message string) *GeoResult {
	return &GeoResult{
		Error:   true,
		Message: message,
		Kind:    kind,
	}
}

// Success reports whether the result carries a usable geolocation record
func (g *GeoResult) Success() bool {
	return g != nil && !g.Error && g.Status == "success"
}

// PageData is what the render layer receives for the index page
type PageData struct {
	IPAddress string
	Location  *GeoResult
}

// ErrorResponse is the standard error response format for the JSON API
type ErrorResponse struct {
	Error string `json:"error"` // Error message
}
