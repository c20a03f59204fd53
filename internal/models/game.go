package models

import "time"

// Game represents a scheduled NBA game. StartTime is always stored in
// UTC; the natural key is (home team, away team, start time, season) so a
// matchup recurring within a season is distinguished by its start instant.
type Game struct {
	ID         int       `db:"id"`
	HomeTeamID int       `db:"home_team_id"`
	AwayTeamID int       `db:"away_team_id"`
	StartTime  time.Time `db:"start_time"`
	SeasonID   int       `db:"season_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ScheduleEventInput is one event from the schedule source
type ScheduleEventInput struct {
	HomeTeamName string    `json:"home_team_name"`
	AwayTeamName string    `json:"away_team_name"`
	StartTime    time.Time `json:"start_time"`
}

// ToGame converts a schedule event to a Game model once both team
// database IDs have been resolved
func (se *ScheduleEventInput) ToGame(homeTeamID, awayTeamID, seasonID int) *Game {
	return &Game{
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		StartTime:  se.StartTime.UTC(),
		SeasonID:   seasonID,
	}
}
