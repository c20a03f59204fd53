package models

import "time"

// Player represents a rostered player. The natural key is
// (first name, last name, team): a traded player re-appears as a new row
// under his new team, and records reconcile against whichever team he is
// currently assigned to.
type Player struct {
	ID         int       `db:"id"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	TeamID     int       `db:"team_id"`
	PositionID int       `db:"position_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// PlayerSeasonInput is one record from the season statistics source
type PlayerSeasonInput struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	TeamAbbreviation string `json:"team"`
	Position         string `json:"position"`
}

// ToPlayer converts a player-season record to a Player model once the
// team and position database IDs have been resolved
func (ps *PlayerSeasonInput) ToPlayer(teamID, positionID int) *Player {
	return &Player{
		FirstName:  ps.FirstName,
		LastName:   ps.LastName,
		TeamID:     teamID,
		PositionID: positionID,
	}
}
