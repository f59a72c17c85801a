package models

import "time"

// SpeciesDB represents a species row in the database.
// ParkID must reference an existing park at write time.
type SpeciesDB struct {
	ID             int64     `db:"id"`              // Primary key
	Name           string    `db:"name"`            // Common name, required
	ScientificName string    `db:"scientific_name"` // Latin name
	ParkID         int64     `db:"park_id"`         // Owning park, foreign key
	Description    string    `db:"description"`     // Free-form description
	Image          string    `db:"image"`           // Image URL
	CreatedAt      time.Time `db:"created_at"`      // Creation timestamp, immutable
	UpdatedAt      time.Time `db:"updated_at"`      // Refreshed on every mutation
}

// Species is the external representation of a species.
// swagger:model Species
type Species struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	ScientificName string    `json:"scientific_name,omitempty"`
	ParkID         int64     `json:"park_id"`
	Description    string    `json:"description,omitempty"`
	Image          string    `json:"image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SpeciesInput carries the mutable species fields for create and update.
// swagger:model SpeciesInput
type SpeciesInput struct {
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name,omitempty"`
	ParkID         int64  `json:"park_id"`
	Description    string `json:"description,omitempty"`
	Image          string `json:"image,omitempty"`
}

// SpeciesFromDB maps a database row to the external species shape.
func SpeciesFromDB(s SpeciesDB) Species {
	return Species{
		ID:             s.ID,
		Name:           s.Name,
		ScientificName: s.ScientificName,
		ParkID:         s.ParkID,
		Description:    s.Description,
		Image:          s.Image,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
