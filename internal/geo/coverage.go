package geo

import "heritage-check-api/internal/models"

// Coverage is the supported-region bounding box. Points outside it are
// rejected before any spatial query is issued.
type Coverage struct {
	MinLongitude float64
	MaxLongitude float64
	MinLatitude  float64
	MaxLatitude  float64
}

// LondonCoverage is the Greater London bounding box the heritage datasets
// were ingested for.
func LondonCoverage() Coverage {
	return Coverage{
		MinLongitude: -0.5103,
		MaxLongitude: 0.3340,
		MinLatitude:  51.2867,
		MaxLatitude:  51.6919,
	}
}

// Center returns the midpoint of the box, used as a proximity bias for
// ranking ambiguous geocoding candidates.
func (cov Coverage) Center() models.Coordinates {
	return models.Coordinates{
		Latitude:  (cov.MinLatitude + cov.MaxLatitude) / 2,
		Longitude: (cov.MinLongitude + cov.MaxLongitude) / 2,
	}
}

// Contains reports whether the point lies inside the box, edges inclusive.
func (cov Coverage) Contains(c models.Coordinates) bool {
	return c.Longitude >= cov.MinLongitude && c.Longitude <= cov.MaxLongitude &&
		c.Latitude >= cov.MinLatitude && c.Latitude <= cov.MaxLatitude
}
