package models

import "time"

// PropertyStatus is the heritage classification of a property.
type PropertyStatus string

const (
	// StatusRed means the point sits on or at a statutorily listed building.
	StatusRed PropertyStatus = "RED"
	// StatusAmber means the point falls inside a conservation area but is not listed.
	StatusAmber PropertyStatus = "AMBER"
	// StatusGreen means no heritage constraint was found.
	StatusGreen PropertyStatus = "GREEN"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodingCandidate is one ranked result from the geocoding provider.
type GeocodingCandidate struct {
	PlaceName   string      `json:"place_name"`
	Coordinates Coordinates `json:"coordinates"`
	Postcode    string      `json:"postcode,omitempty"`
	Borough     string      `json:"borough,omitempty"`
	Relevance   float64     `json:"relevance"`
	PlaceTypes  []string    `json:"place_types,omitempty"`
}

// ListedBuilding is a Historic England list entry near the checked point.
type ListedBuilding struct {
	ID              int64   `json:"id"`
	ListEntryNumber string  `json:"list_entry_number"`
	Name            string  `json:"name"`
	Grade           string  `json:"grade"` // I, II* or II
	Hyperlink       string  `json:"hyperlink,omitempty"`
	DistanceMeters  float64 `json:"distance_meters"`
}

// ConservationArea is a designated conservation area containing the checked point.
type ConservationArea struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Borough         string `json:"borough"`
	HasArticle4     bool   `json:"has_article4"`
	Article4Details string `json:"article4_details,omitempty"`
}

// PropertyCheckResult is the outcome of one property status check.
//
// Invariant: Status is RED iff ListedBuilding is non-nil, AMBER iff
// ListedBuilding is nil and ConservationArea is non-nil, GREEN otherwise.
type PropertyCheckResult struct {
	Status           PropertyStatus    `json:"status"`
	Address          string            `json:"address"`
	Postcode         string            `json:"postcode,omitempty"`
	Borough          string            `json:"borough,omitempty"`
	Coordinates      Coordinates       `json:"coordinates"`
	ListedBuilding   *ListedBuilding   `json:"listed_building,omitempty"`
	ConservationArea *ConservationArea `json:"conservation_area,omitempty"`
	HasArticle4      bool              `json:"has_article4"`
	Timestamp        time.Time         `json:"timestamp"`
	SearchID         string            `json:"search_id"`
}

// SearchRecord is the analytics row persisted for each completed check.
type SearchRecord struct {
	SearchID  string
	Address   string
	Postcode  string
	Borough   string
	Latitude  float64
	Longitude float64
	Status    PropertyStatus
	ClientIP  string
	UserAgent string
	CreatedAt time.Time
}
