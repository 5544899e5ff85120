package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"heritage-check-api/internal/cache"
	"heritage-check-api/internal/geo"
	"heritage-check-api/internal/metrics"
	"heritage-check-api/internal/models"
)

// MinQueryLength is the shortest query worth sending to the provider.
const MinQueryLength = 3

// MaxResults is the provider-side result ceiling per request.
const MaxResults = 10

var (
	// ErrQueryTooShort is returned for queries below MinQueryLength.
	ErrQueryTooShort = errors.New("geocoder: query too short")
	// ErrUnavailable is returned when the provider times out or answers non-2xx.
	ErrUnavailable = errors.New("geocoder: provider unavailable")
)

// Options tune a single resolve call.
type Options struct {
	Limit         int
	ProximityBias *models.Coordinates
}

// Client resolves free-text addresses through a Mapbox-style forward
// geocoding API, bounded to the supported coverage region and to GB.
// Successful non-empty lookups are cached; failures and empty results
// are not, so an unresolvable address can succeed on resubmission.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	coverage   geo.Coverage
	cache      *cache.Cache[[]models.GeocodingCandidate]
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
}

// NewClient creates a geocoding client.
func NewClient(baseURL, token string, timeout time.Duration, coverage geo.Coverage, addressCache *cache.Cache[[]models.GeocodingCandidate], cacheTTL time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		coverage:   coverage,
		cache:      addressCache,
		cacheTTL:   cacheTTL,
		metrics:    m,
	}
}

// Resolve returns candidates for the query ordered by provider relevance.
// A clean zero-result response is an empty slice with a nil error.
func (c *Client) Resolve(ctx context.Context, query string, opts Options) ([]models.GeocodingCandidate, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, ErrQueryTooShort
	}

	limit := opts.Limit
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	key := cache.NormalizeKey(query)
	if candidates, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCacheHits.Inc()
		return clamp(candidates, limit), nil
	}
	c.metrics.GeocodeCacheMisses.Inc()

	candidates, err := c.fetch(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	if len(candidates) > 0 {
		c.cache.Set(key, candidates, c.cacheTTL)
	}

	return clamp(candidates, limit), nil
}

func (c *Client) fetch(ctx context.Context, query string, opts Options) ([]models.GeocodingCandidate, error) {
	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("country", "GB")
	params.Set("limit", fmt.Sprintf("%d", MaxResults))
	params.Set("bbox", fmt.Sprintf("%f,%f,%f,%f",
		c.coverage.MinLongitude, c.coverage.MinLatitude,
		c.coverage.MaxLongitude, c.coverage.MaxLatitude))
	if opts.ProximityBias != nil {
		params.Set("proximity", fmt.Sprintf("%f,%f", opts.ProximityBias.Longitude, opts.ProximityBias.Latitude))
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		c.baseURL, url.PathEscape(query), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	candidates := make([]models.GeocodingCandidate, 0, len(decoded.Features))
	for _, feat := range decoded.Features {
		if len(feat.Center) < 2 {
			continue
		}
		candidate := models.GeocodingCandidate{
			PlaceName: feat.PlaceName,
			Coordinates: models.Coordinates{
				Longitude: feat.Center[0],
				Latitude:  feat.Center[1],
			},
			Relevance:  feat.Relevance,
			PlaceTypes: feat.PlaceType,
		}
		for _, entry := range feat.Context {
			switch {
			case strings.HasPrefix(entry.ID, "postcode"):
				candidate.Postcode = entry.Text
			case strings.HasPrefix(entry.ID, "locality"):
				candidate.Borough = entry.Text
			case strings.HasPrefix(entry.ID, "district") && candidate.Borough == "":
				candidate.Borough = entry.Text
			}
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func clamp(candidates []models.GeocodingCandidate, limit int) []models.GeocodingCandidate {
	if len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}

type featureCollection struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Relevance float64   `json:"relevance"`
		PlaceType []string  `json:"place_type"`
		Center    []float64 `json:"center"`
		Context   []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"context"`
	} `json:"features"`
}
