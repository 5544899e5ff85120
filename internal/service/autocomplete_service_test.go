package service

import (
	"context"
	"testing"

	"heritage-check-api/internal/geo"
	"heritage-check-api/internal/geocoder"
	"heritage-check-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAutocompleteService_Suggest(t *testing.T) {
	bias := geo.LondonCoverage().Center()
	candidates := []models.GeocodingCandidate{
		{PlaceName: "Flask Walk, Hampstead, London", Relevance: 0.9},
		{PlaceName: "Flask Walk Mews, London", Relevance: 0.7},
	}

	tests := []struct {
		name          string
		query         string
		limit         int
		expectedLimit int
		mockResult    []models.GeocodingCandidate
		mockError     error
		expected      []models.GeocodingCandidate
		expectedErr   error
	}{
		{
			name:          "successful suggestion",
			query:         "flask",
			limit:         5,
			expectedLimit: 5,
			mockResult:    candidates,
			expected:      candidates,
		},
		{
			name:          "limit clamped to ceiling",
			query:         "flask",
			limit:         50,
			expectedLimit: 10,
			mockResult:    candidates,
			expected:      candidates,
		},
		{
			name:          "zero limit defaults to ceiling",
			query:         "flask",
			limit:         0,
			expectedLimit: 10,
			mockResult:    candidates,
			expected:      candidates,
		},
		{
			name:          "query too short becomes validation error",
			query:         "fl",
			limit:         5,
			expectedLimit: 5,
			mockError:     geocoder.ErrQueryTooShort,
			expectedErr:   ErrValidation,
		},
		{
			name:          "provider failure becomes geocoding unavailable",
			query:         "flask",
			limit:         5,
			expectedLimit: 5,
			mockError:     geocoder.ErrUnavailable,
			expectedErr:   ErrGeocodingUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc := new(MockGeocoder)
			svc := NewAutocompleteService(gc, bias)

			opts := geocoder.Options{Limit: tt.expectedLimit, ProximityBias: &bias}
			if tt.mockError != nil {
				gc.On("Resolve", mock.Anything, tt.query, opts).Return(nil, tt.mockError)
			} else {
				gc.On("Resolve", mock.Anything, tt.query, opts).Return(tt.mockResult, nil)
			}

			result, err := svc.Suggest(context.Background(), tt.query, tt.limit)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			gc.AssertExpectations(t)
		})
	}
}

func TestAutocompleteService_Suggest_EqualRelevanceRankedByProximity(t *testing.T) {
	bias := geo.LondonCoverage().Center()

	far := models.GeocodingCandidate{
		PlaceName:   "Flask Walk, Enfield",
		Coordinates: models.Coordinates{Latitude: 51.6510, Longitude: -0.0810},
		Relevance:   0.8,
	}
	near := models.GeocodingCandidate{
		PlaceName:   "Flask Walk, Hampstead, London",
		Coordinates: models.Coordinates{Latitude: 51.5565, Longitude: -0.1780},
		Relevance:   0.8,
	}
	best := models.GeocodingCandidate{
		PlaceName:   "10 Flask Walk, Hampstead, London",
		Coordinates: models.Coordinates{Latitude: 51.5565, Longitude: -0.1780},
		Relevance:   0.95,
	}

	gc := new(MockGeocoder)
	gc.On("Resolve", mock.Anything, "flask walk", mock.Anything).
		Return([]models.GeocodingCandidate{far, near, best}, nil)

	svc := NewAutocompleteService(gc, bias)
	result, err := svc.Suggest(context.Background(), "flask walk", 10)
	require.NoError(t, err)
	require.Len(t, result, 3)

	// Highest relevance first, then nearer of the tied pair.
	assert.Equal(t, best.PlaceName, result[0].PlaceName)
	assert.Equal(t, near.PlaceName, result[1].PlaceName)
	assert.Equal(t, far.PlaceName, result[2].PlaceName)
}
