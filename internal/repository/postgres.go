package repository

import (
	"context"
	"fmt"

	"heritage-check-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Repository implements the spatial and analytics queries against PostgreSQL/PostGIS.
type Repository struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool, logger zerolog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// FindNearbyListedBuildings returns listed buildings within radiusMeters of the
// point, nearest first, ties broken by ascending id.
func (r *Repository) FindNearbyListedBuildings(ctx context.Context, lat, lon, radiusMeters float64) ([]models.ListedBuilding, error) {
	sql := `
		SELECT
			id,
			list_entry_number,
			name,
			grade,
			COALESCE(hyperlink, '') AS hyperlink,
			ST_Distance(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography) AS distance_meters
		FROM listed_buildings
		WHERE ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, $3)
		ORDER BY distance_meters ASC, id ASC
	`

	rows, err := r.db.Query(ctx, sql, lat, lon, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute listed buildings query: %w", err)
	}
	defer rows.Close()

	var buildings []models.ListedBuilding
	for rows.Next() {
		var b models.ListedBuilding
		err := rows.Scan(
			&b.ID,
			&b.ListEntryNumber,
			&b.Name,
			&b.Grade,
			&b.Hyperlink,
			&b.DistanceMeters,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan listed building: %w", err)
		}
		buildings = append(buildings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating listed buildings: %w", err)
	}

	return buildings, nil
}

// FindContainingConservationArea returns the conservation area whose boundary
// contains the point, or nil when none does. Overlapping designations are a
// data-quality anomaly: the first row in store order wins and the rest are logged.
func (r *Repository) FindContainingConservationArea(ctx context.Context, lat, lon float64) (*models.ConservationArea, error) {
	sql := `
		SELECT
			id,
			name,
			borough,
			has_article4,
			COALESCE(article4_details, '') AS article4_details
		FROM conservation_areas
		WHERE ST_Contains(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326))
	`

	rows, err := r.db.Query(ctx, sql, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute conservation area query: %w", err)
	}
	defer rows.Close()

	var areas []models.ConservationArea
	for rows.Next() {
		var a models.ConservationArea
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Borough,
			&a.HasArticle4,
			&a.Article4Details,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan conservation area: %w", err)
		}
		areas = append(areas, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating conservation areas: %w", err)
	}

	if len(areas) == 0 {
		return nil, nil
	}

	if len(areas) > 1 {
		r.logger.Warn().
			Float64("lat", lat).
			Float64("lon", lon).
			Int("matches", len(areas)).
			Str("selected", areas[0].Name).
			Msg("point contained by multiple conservation areas, taking first")
	}

	return &areas[0], nil
}

// InsertSearchRecord appends one analytics row for a completed check.
func (r *Repository) InsertSearchRecord(ctx context.Context, rec models.SearchRecord) error {
	sql := `
		INSERT INTO search_records (
			search_id, address, postcode, borough, geom, status, client_ip, user_agent, created_at
		) VALUES (
			$1, $2, $3, $4, ST_SetSRID(ST_MakePoint($6, $5), 4326), $7, $8, $9, $10
		)
	`

	_, err := r.db.Exec(ctx, sql,
		rec.SearchID,
		rec.Address,
		rec.Postcode,
		rec.Borough,
		rec.Latitude,
		rec.Longitude,
		string(rec.Status),
		rec.ClientIP,
		rec.UserAgent,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert search record: %w", err)
	}

	return nil
}
