package models

import "time"

// Location represents park coordinates as exposed by the API.
type Location struct {
	Latitude  float64 `json:"latitude"`  // Latitude in decimal degrees
	Longitude float64 `json:"longitude"` // Longitude in decimal degrees
}

// ParkDB represents a park row in the database. Coordinates are stored
// flattened; the API shape nests them as a Location.
type ParkDB struct {
	ID          int64     `db:"id"`          // Primary key
	Name        string    `db:"name"`        // Park name, required
	Description string    `db:"description"` // Free-form description
	Latitude    float64   `db:"latitude"`    // Latitude in decimal degrees
	Longitude   float64   `db:"longitude"`   // Longitude in decimal degrees
	Images      string    `db:"images"`      // Comma-joined image URLs
	CreatedAt   time.Time `db:"created_at"`  // Creation timestamp, immutable
	UpdatedAt   time.Time `db:"updated_at"`  // Refreshed on every mutation
}

// Park is the external representation of a park.
// swagger:model Park
type Park struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    Location  `json:"location"`
	Images      string    `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ParkInput carries the mutable park fields for create and update.
// swagger:model ParkInput
type ParkInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
	Images      string   `json:"images,omitempty"`
}

// ParkFromDB maps a database row to the external park shape.
func ParkFromDB(p ParkDB) Park {
	return Park{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Location:    Location{Latitude: p.Latitude, Longitude: p.Longitude},
		Images:      p.Images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
