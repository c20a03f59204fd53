package models

import "time"

// Position represents a canonical player position (PG, SG, SF, PF, C).
// Resolution identity is the abbreviation, which is unique.
type Position struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	Abbreviation string    `db:"abbreviation"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// PositionInput is used for seeding positions from reference data
type PositionInput struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// ToPosition converts PositionInput to the Position model
func (pi *PositionInput) ToPosition() *Position {
	return &Position{
		Name:         pi.Name,
		Abbreviation: pi.Abbreviation,
	}
}
