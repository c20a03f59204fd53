package models

import "time"

// Team represents a canonical NBA franchise.
// Resolution identity is the abbreviation, which is unique.
type Team struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	Abbreviation string    `db:"abbreviation"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// TeamInput is used for seeding teams from reference data
type TeamInput struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// ToTeam converts TeamInput to the Team model
func (ti *TeamInput) ToTeam() *Team {
	return &Team{
		Name:         ti.Name,
		Abbreviation: ti.Abbreviation,
	}
}
