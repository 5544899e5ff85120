package geo

import (
	"testing"

	"heritage-check-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCoverage_Contains(t *testing.T) {
	cov := LondonCoverage()

	tests := []struct {
		name     string
		point    models.Coordinates
		expected bool
	}{
		{
			name:     "central london",
			point:    models.Coordinates{Latitude: 51.5074, Longitude: -0.1278},
			expected: true,
		},
		{
			name:     "south west corner inclusive",
			point:    models.Coordinates{Latitude: cov.MinLatitude, Longitude: cov.MinLongitude},
			expected: true,
		},
		{
			name:     "north east corner inclusive",
			point:    models.Coordinates{Latitude: cov.MaxLatitude, Longitude: cov.MaxLongitude},
			expected: true,
		},
		{
			name:     "just west of the box",
			point:    models.Coordinates{Latitude: 51.5, Longitude: cov.MinLongitude - 0.0001},
			expected: false,
		},
		{
			name:     "just north of the box",
			point:    models.Coordinates{Latitude: cov.MaxLatitude + 0.0001, Longitude: 0},
			expected: false,
		},
		{
			name:     "manchester",
			point:    models.Coordinates{Latitude: 53.4808, Longitude: -2.2426},
			expected: false,
		},
		{
			name:     "paris",
			point:    models.Coordinates{Latitude: 48.8566, Longitude: 2.3522},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cov.Contains(tt.point))
		})
	}
}
