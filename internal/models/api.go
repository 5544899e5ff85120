package models

import "time"

// Error codes returned to API clients.
const (
	CodeRateLimited       = "RATE_LIMITED"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeGeocodingFailed   = "GEOCODING_FAILED"
	CodeNotInCoverageArea = "NOT_IN_COVERAGE_AREA"
	CodeServerError       = "SERVER_ERROR"
)

// CheckRequest is the body of a property check submission. When Coordinates
// is supplied the address is not geocoded.
type CheckRequest struct {
	Address     string       `json:"address"`
	Postcode    string       `json:"postcode,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// CheckResponse is the success envelope for a property check.
type CheckResponse struct {
	Success   bool                `json:"success"`
	Data      PropertyCheckResult `json:"data"`
	Timestamp time.Time           `json:"timestamp"`
}

// ErrorResponse is the failure envelope shared by all endpoints.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}
