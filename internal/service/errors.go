package service

import "errors"

// Sentinel errors forming the pipeline's outcome taxonomy. The handler layer
// is the single place these are mapped to HTTP responses.
var (
	// ErrValidation means the caller must fix the request before retrying.
	ErrValidation = errors.New("invalid request")
	// ErrAddressNotFound means the geocoder resolved cleanly to zero candidates.
	ErrAddressNotFound = errors.New("address not found")
	// ErrOutsideCoverage means the point falls outside the supported region.
	ErrOutsideCoverage = errors.New("location outside coverage area")
	// ErrGeocodingUnavailable means the geocoding provider failed or timed out.
	ErrGeocodingUnavailable = errors.New("geocoding provider unavailable")
	// ErrSpatialLookup means the spatial data store failed. It is never
	// conflated with "no match".
	ErrSpatialLookup = errors.New("spatial lookup failed")
)
