package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"heritage-check-api/internal/config"
	"heritage-check-api/internal/geo"
	"heritage-check-api/internal/models"

	"github.com/jackc/pgx/v5"
)

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry   geometry        `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	raw         json.RawMessage
}

func (g *geometry) UnmarshalJSON(data []byte) error {
	type plain geometry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*g = geometry(p)
	g.raw = append(json.RawMessage(nil), data...)
	return nil
}

type buildingProperties struct {
	ListEntry string `json:"ListEntry"`
	Name      string `json:"Name"`
	Grade     string `json:"Grade"`
	Hyperlink string `json:"hyperlink"`
}

type areaProperties struct {
	Name            string `json:"name"`
	Borough         string `json:"borough"`
	HasArticle4     bool   `json:"has_article4"`
	Article4Details string `json:"article4_details"`
}

type buildingRecord struct {
	ListEntry string
	Name      string
	Grade     string
	Hyperlink string
	Lat       float64
	Lon       float64
}

func main() {
	buildingsFile := flag.String("buildings", "", "Path to a listed buildings GeoJSON file")
	areasFile := flag.String("areas", "", "Path to a conservation areas GeoJSON file")
	flag.Parse()

	if *buildingsFile == "" && *areasFile == "" {
		fmt.Println("Error: at least one of --buildings or --areas is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	if err := createTablesIfNotExist(conn); err != nil {
		fmt.Printf("Error creating tables: %v\n", err)
		os.Exit(1)
	}

	if *buildingsFile != "" {
		if err := importBuildings(conn, *buildingsFile); err != nil {
			fmt.Printf("Error importing listed buildings: %v\n", err)
			os.Exit(1)
		}
	}

	if *areasFile != "" {
		if err := importAreas(conn, *areasFile); err != nil {
			fmt.Printf("Error importing conservation areas: %v\n", err)
			os.Exit(1)
		}
	}
}

func parseGeoJSON(filePath string) (*featureCollection, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	return &fc, nil
}

func importBuildings(conn *pgx.Conn, filePath string) error {
	fmt.Printf("Starting listed buildings import from file: %s\n", filePath)

	fc, err := parseGeoJSON(filePath)
	if err != nil {
		return err
	}

	coverage := geo.LondonCoverage()

	var records []buildingRecord
	skipped := 0
	for _, feat := range fc.Features {
		if feat.Geometry.Type != "Point" {
			skipped++
			continue
		}

		var coords []float64
		if err := json.Unmarshal(feat.Geometry.Coordinates, &coords); err != nil || len(coords) < 2 {
			skipped++
			continue
		}

		point := models.Coordinates{Longitude: coords[0], Latitude: coords[1]}
		if !coverage.Contains(point) {
			skipped++
			continue
		}

		var props buildingProperties
		if err := json.Unmarshal(feat.Properties, &props); err != nil {
			return fmt.Errorf("invalid building properties: %w", err)
		}
		if props.ListEntry == "" {
			skipped++
			continue
		}

		records = append(records, buildingRecord{
			ListEntry: props.ListEntry,
			Name:      props.Name,
			Grade:     props.Grade,
			Hyperlink: props.Hyperlink,
			Lat:       point.Latitude,
			Lon:       point.Longitude,
		})
	}

	fmt.Printf("Parsed %d buildings (%d skipped)\n", len(records), skipped)

	// Use CopyFrom for bulk insert
	_, err = conn.CopyFrom(
		context.Background(),
		pgx.Identifier{"listed_buildings"},
		[]string{"list_entry_number", "name", "grade", "hyperlink", "geom"},
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			r := records[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", r.Lon, r.Lat) // PostGIS format: lon lat
			var hyperlink interface{}
			if r.Hyperlink != "" {
				hyperlink = r.Hyperlink
			}
			return []interface{}{r.ListEntry, r.Name, r.Grade, hyperlink, geom}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("bulk insert failed: %w", err)
	}

	return verifyCount(conn, "listed_buildings", len(records))
}

func importAreas(conn *pgx.Conn, filePath string) error {
	fmt.Printf("Starting conservation areas import from file: %s\n", filePath)

	fc, err := parseGeoJSON(filePath)
	if err != nil {
		return err
	}

	inserted := 0
	skipped := 0
	for _, feat := range fc.Features {
		if feat.Geometry.Type != "Polygon" && feat.Geometry.Type != "MultiPolygon" {
			skipped++
			continue
		}

		var props areaProperties
		if err := json.Unmarshal(feat.Properties, &props); err != nil {
			return fmt.Errorf("invalid area properties: %w", err)
		}
		if props.Name == "" {
			skipped++
			continue
		}

		var details interface{}
		if props.Article4Details != "" {
			details = props.Article4Details
		}

		// ST_MakeValid repairs the self-intersecting boundaries common in
		// borough open-data exports.
		_, err := conn.Exec(context.Background(), `
			INSERT INTO conservation_areas (name, borough, has_article4, article4_details, geom)
			VALUES ($1, $2, $3, $4, ST_Multi(ST_MakeValid(ST_SetSRID(ST_GeomFromGeoJSON($5), 4326))))
		`, props.Name, props.Borough, props.HasArticle4, details, string(feat.Geometry.raw))
		if err != nil {
			return fmt.Errorf("failed to insert area %q: %w", props.Name, err)
		}
		inserted++
	}

	fmt.Printf("Inserted %d conservation areas (%d skipped)\n", inserted, skipped)
	return verifyCount(conn, "conservation_areas", inserted)
}

func createTablesIfNotExist(conn *pgx.Conn) error {
	query := `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS listed_buildings (
		id BIGSERIAL PRIMARY KEY,
		list_entry_number VARCHAR(32) NOT NULL,
		name TEXT NOT NULL,
		grade VARCHAR(8) NOT NULL,
		hyperlink TEXT,
		geom GEOGRAPHY(POINT, 4326)
	);
	CREATE INDEX IF NOT EXISTS listed_buildings_geom_idx ON listed_buildings USING GIST (geom);

	CREATE TABLE IF NOT EXISTS conservation_areas (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		borough TEXT NOT NULL,
		has_article4 BOOLEAN NOT NULL DEFAULT FALSE,
		article4_details TEXT,
		geom GEOMETRY(MULTIPOLYGON, 4326)
	);
	CREATE INDEX IF NOT EXISTS conservation_areas_geom_idx ON conservation_areas USING GIST (geom);

	CREATE TABLE IF NOT EXISTS search_records (
		id BIGSERIAL PRIMARY KEY,
		search_id UUID NOT NULL,
		address TEXT,
		postcode TEXT,
		borough TEXT,
		geom GEOMETRY(POINT, 4326),
		status VARCHAR(8) NOT NULL,
		client_ip TEXT,
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS search_records_created_at_idx ON search_records (created_at);
	`
	_, err := conn.Exec(context.Background(), query)
	return err
}

func verifyCount(conn *pgx.Conn, table string, minExpected int) error {
	var count int
	err := conn.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count < minExpected {
		return fmt.Errorf("record count mismatch in %s: expected at least %d, got %d", table, minExpected, count)
	}

	fmt.Printf("%s now holds %d records\n", table, count)
	return nil
}
