package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"heritage-check-api/internal/geo"
	"heritage-check-api/internal/geocoder"
	"heritage-check-api/internal/models"
)

// maxSuggestions caps the autocomplete candidate count.
const maxSuggestions = 10

// AutocompleteService serves address suggestions straight from the geocoding
// client, which handles caching. Candidates with equal provider relevance are
// re-ranked by distance to the bias point (the coverage centre).
type AutocompleteService struct {
	geocoder Geocoder
	bias     models.Coordinates
}

// NewAutocompleteService creates a new autocomplete service.
func NewAutocompleteService(gc Geocoder, bias models.Coordinates) *AutocompleteService {
	return &AutocompleteService{geocoder: gc, bias: bias}
}

// Suggest returns up to limit candidates for the partial query, ordered by
// provider relevance.
func (s *AutocompleteService) Suggest(ctx context.Context, query string, limit int) ([]models.GeocodingCandidate, error) {
	if limit <= 0 || limit > maxSuggestions {
		limit = maxSuggestions
	}

	candidates, err := s.geocoder.Resolve(ctx, query, geocoder.Options{Limit: limit, ProximityBias: &s.bias})
	if err != nil {
		if errors.Is(err, geocoder.ErrQueryTooShort) {
			return nil, fmt.Errorf("%w: query must be at least %d characters", ErrValidation, geocoder.MinQueryLength)
		}
		return nil, fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Relevance != candidates[j].Relevance {
			return candidates[i].Relevance > candidates[j].Relevance
		}
		return geo.Distance(s.bias, candidates[i].Coordinates) < geo.Distance(s.bias, candidates[j].Coordinates)
	})

	return candidates, nil
}
