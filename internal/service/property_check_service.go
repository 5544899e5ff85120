package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"heritage-check-api/internal/geo"
	"heritage-check-api/internal/geocoder"
	"heritage-check-api/internal/metrics"
	"heritage-check-api/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	minAddressLength = 5
	maxAddressLength = 200
)

// Geocoder resolves free text to ranked coordinate candidates.
type Geocoder interface {
	Resolve(ctx context.Context, query string, opts geocoder.Options) ([]models.GeocodingCandidate, error)
}

// SpatialStore exposes the two geometry predicates the pipeline needs.
type SpatialStore interface {
	FindNearbyListedBuildings(ctx context.Context, lat, lon, radiusMeters float64) ([]models.ListedBuilding, error)
	FindContainingConservationArea(ctx context.Context, lat, lon float64) (*models.ConservationArea, error)
}

// SearchRecordStore persists analytics rows for completed checks.
type SearchRecordStore interface {
	InsertSearchRecord(ctx context.Context, rec models.SearchRecord) error
}

// ClientMeta identifies the requester for the analytics record.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// PropertyCheckService runs the full status resolution pipeline: validation,
// geocoding, coverage check, the two spatial lookups, classification and the
// best-effort analytics write.
type PropertyCheckService struct {
	geocoder      Geocoder
	store         SpatialStore
	records       SearchRecordStore
	coverage      geo.Coverage
	radiusMeters  float64
	recordTimeout time.Duration
	logger        zerolog.Logger
	metrics       *metrics.Metrics

	now         func() time.Time
	newSearchID func() string
}

// NewPropertyCheckService creates the pipeline with its collaborators.
func NewPropertyCheckService(
	gc Geocoder,
	store SpatialStore,
	records SearchRecordStore,
	coverage geo.Coverage,
	radiusMeters float64,
	recordTimeout time.Duration,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *PropertyCheckService {
	return &PropertyCheckService{
		geocoder:      gc,
		store:         store,
		records:       records,
		coverage:      coverage,
		radiusMeters:  radiusMeters,
		recordTimeout: recordTimeout,
		logger:        logger,
		metrics:       m,
		now:           time.Now,
		newSearchID:   func() string { return uuid.NewString() },
	}
}

// Check resolves the request to a classified property status. Rejections are
// returned as the sentinel errors in errors.go; a returned result is always
// fully populated and already dispatched to the analytics store.
func (s *PropertyCheckService) Check(ctx context.Context, req models.CheckRequest, meta ClientMeta) (*models.PropertyCheckResult, error) {
	if err := validateRequest(req); err != nil {
		s.metrics.ObserveCheck(models.CodeValidationError)
		return nil, err
	}

	point, address, postcode, borough, err := s.resolve(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAddressNotFound):
			s.metrics.ObserveCheck(models.CodeGeocodingFailed)
		case errors.Is(err, ErrValidation):
			s.metrics.ObserveCheck(models.CodeValidationError)
		default:
			s.metrics.ObserveCheck(models.CodeServerError)
		}
		return nil, err
	}

	if !s.coverage.Contains(point) {
		s.metrics.ObserveCheck(models.CodeNotInCoverageArea)
		return nil, ErrOutsideCoverage
	}

	// The two lookups are independent; run them concurrently and join before
	// classification. Both always run: precedence needs both facts.
	var (
		buildings []models.ListedBuilding
		area      *models.ConservationArea
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		buildings, err = s.store.FindNearbyListedBuildings(gctx, point.Latitude, point.Longitude, s.radiusMeters)
		return err
	})
	g.Go(func() error {
		var err error
		area, err = s.store.FindContainingConservationArea(gctx, point.Latitude, point.Longitude)
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.ObserveCheck(models.CodeServerError)
		return nil, fmt.Errorf("%w: %v", ErrSpatialLookup, err)
	}

	classification := Classify(buildings, area)

	result := &models.PropertyCheckResult{
		Status:           classification.Status,
		Address:          address,
		Postcode:         postcode,
		Borough:          borough,
		Coordinates:      point,
		ListedBuilding:   classification.ListedBuilding,
		ConservationArea: classification.ConservationArea,
		HasArticle4:      classification.HasArticle4,
		Timestamp:        s.now().UTC(),
		SearchID:         s.newSearchID(),
	}

	s.metrics.ObserveCheck(string(result.Status))
	s.dispatchSearchRecord(ctx, result, meta)

	return result, nil
}

// dispatchSearchRecord persists the analytics row without blocking or failing
// the response. The write runs on a context detached from the request so a
// client disconnect does not cancel it.
func (s *PropertyCheckService) dispatchSearchRecord(ctx context.Context, result *models.PropertyCheckResult, meta ClientMeta) {
	rec := models.SearchRecord{
		SearchID:  result.SearchID,
		Address:   result.Address,
		Postcode:  result.Postcode,
		Borough:   result.Borough,
		Latitude:  result.Coordinates.Latitude,
		Longitude: result.Coordinates.Longitude,
		Status:    result.Status,
		ClientIP:  meta.IP,
		UserAgent: meta.UserAgent,
		CreatedAt: result.Timestamp,
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		writeCtx, cancel := context.WithTimeout(detached, s.recordTimeout)
		defer cancel()

		if err := s.records.InsertSearchRecord(writeCtx, rec); err != nil {
			s.metrics.SearchRecordFailures.Inc()
			s.logger.Error().Err(err).Str("search_id", rec.SearchID).Msg("failed to persist search record")
		}
	}()
}

// resolve produces the point to classify, either from caller-supplied
// coordinates or by geocoding the address.
func (s *PropertyCheckService) resolve(ctx context.Context, req models.CheckRequest) (models.Coordinates, string, string, string, error) {
	if req.Coordinates != nil {
		return *req.Coordinates, req.Address, req.Postcode, "", nil
	}

	candidates, err := s.geocoder.Resolve(ctx, req.Address, geocoder.Options{Limit: 1})
	if err != nil {
		if errors.Is(err, geocoder.ErrQueryTooShort) {
			return models.Coordinates{}, "", "", "", fmt.Errorf("%w: address too short to geocode", ErrValidation)
		}
		return models.Coordinates{}, "", "", "", fmt.Errorf("%w: %v", ErrGeocodingUnavailable, err)
	}
	if len(candidates) == 0 {
		return models.Coordinates{}, "", "", "", ErrAddressNotFound
	}

	best := candidates[0]
	postcode := best.Postcode
	if postcode == "" {
		postcode = req.Postcode
	}
	return best.Coordinates, best.PlaceName, postcode, best.Borough, nil
}

func validateRequest(req models.CheckRequest) error {
	if req.Coordinates != nil {
		c := req.Coordinates
		if c.Latitude < -90 || c.Latitude > 90 {
			return fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
		}
		if c.Longitude < -180 || c.Longitude > 180 {
			return fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
		}
		return nil
	}

	if n := utf8.RuneCountInString(req.Address); n < minAddressLength || n > maxAddressLength {
		return fmt.Errorf("%w: address must be between %d and %d characters", ErrValidation, minAddressLength, maxAddressLength)
	}
	return nil
}
