package geo

import (
	"testing"

	"heritage-check-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	westminster := models.Coordinates{Latitude: 51.4995, Longitude: -0.1248}
	cityOfLondon := models.Coordinates{Latitude: 51.5155, Longitude: -0.0922}

	tests := []struct {
		name string
		a    models.Coordinates
		b    models.Coordinates
		min  float64
		max  float64
	}{
		{
			name: "identical points",
			a:    westminster,
			b:    westminster,
			min:  0,
			max:  0,
		},
		{
			name: "westminster to city of london",
			a:    westminster,
			b:    cityOfLondon,
			min:  2500,
			max:  3500,
		},
		{
			name: "across the equator",
			a:    models.Coordinates{Latitude: -1, Longitude: 0},
			b:    models.Coordinates{Latitude: 1, Longitude: 0},
			min:  220000,
			max:  225000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Distance(tt.a, tt.b)
			assert.GreaterOrEqual(t, d, tt.min)
			assert.LessOrEqual(t, d, tt.max)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := models.Coordinates{Latitude: 51.5565, Longitude: -0.1780}
	b := models.Coordinates{Latitude: 51.5412, Longitude: -0.1430}

	assert.Equal(t, Distance(a, b), Distance(b, a))
}
