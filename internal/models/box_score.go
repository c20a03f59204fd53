package models

import (
	"database/sql"
	"time"
)

// BoxScore represents one player's traditional counting stats for one
// game. One row per (player, game), enforced unique. FantasyPoints is
// derived from the raw stats at write time and is never edited
// independently of them.
type BoxScore struct {
	ID       int `db:"id"`
	PlayerID int `db:"player_id"`
	GameID   int `db:"game_id"`

	SecondsPlayed sql.NullInt32 `db:"seconds_played"`

	FieldGoals                  int `db:"field_goals"`
	FieldGoalAttempts           int `db:"field_goal_attempts"`
	ThreePointFieldGoals        int `db:"three_point_field_goals"`
	ThreePointFieldGoalAttempts int `db:"three_point_field_goal_attempts"`
	FreeThrows                  int `db:"free_throws"`
	FreeThrowAttempts           int `db:"free_throw_attempts"`
	OffensiveRebounds           int `db:"offensive_rebounds"`
	DefensiveRebounds           int `db:"defensive_rebounds"`
	TotalRebounds               int `db:"total_rebounds"`
	Assists                     int `db:"assists"`
	Steals                      int `db:"steals"`
	Blocks                      int `db:"blocks"`
	Turnovers                   int `db:"turnovers"`
	FoulsCommitted              int `db:"fouls_committed"`
	Points                      int `db:"points"`

	FantasyPoints float64 `db:"fantasy_points"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ComputeFantasyPoints evaluates the fixed linear scoring formula over
// the raw stats and stores the result on the row. Must be called before
// every upsert so the stored derived value always matches the stored
// stats.
func (b *BoxScore) ComputeFantasyPoints() {
	b.FantasyPoints = float64(b.Points) +
		float64(b.ThreePointFieldGoals)*0.5 +
		float64(b.TotalRebounds)*1.25 +
		float64(b.Assists)*1.5 +
		float64(b.Steals)*2 +
		float64(b.Blocks)*2 -
		float64(b.Turnovers)*0.5
}

// BoxScoreLineInput is one raw per-player stat line from the daily
// box-score source. Team and opponent carry the source's own
// abbreviations and must be normalized before resolution.
type BoxScoreLineInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Team      string `json:"team"`
	Opponent  string `json:"opponent"`

	SecondsPlayed               *int `json:"seconds_played,omitempty"`
	FieldGoals                  int  `json:"field_goals"`
	FieldGoalAttempts           int  `json:"field_goal_attempts"`
	ThreePointFieldGoals        int  `json:"three_point_field_goals"`
	ThreePointFieldGoalAttempts int  `json:"three_point_field_goal_attempts"`
	FreeThrows                  int  `json:"free_throws"`
	FreeThrowAttempts           int  `json:"free_throw_attempts"`
	OffensiveRebounds           int  `json:"offensive_rebounds"`
	DefensiveRebounds           int  `json:"defensive_rebounds"`
	TotalRebounds               int  `json:"total_rebounds"`
	Assists                     int  `json:"assists"`
	Steals                      int  `json:"steals"`
	Blocks                      int  `json:"blocks"`
	Turnovers                   int  `json:"turnovers"`
	PersonalFouls               int  `json:"personal_fouls"`
	Points                      int  `json:"points"`
}

// ToBoxScore converts a raw stat line to a BoxScore model once the
// player and game database IDs have been resolved. The derived score is
// computed here so callers cannot upsert a stale value.
func (bl *BoxScoreLineInput) ToBoxScore(playerID, gameID int) *BoxScore {
	box := &BoxScore{
		PlayerID:                    playerID,
		GameID:                      gameID,
		FieldGoals:                  bl.FieldGoals,
		FieldGoalAttempts:           bl.FieldGoalAttempts,
		ThreePointFieldGoals:        bl.ThreePointFieldGoals,
		ThreePointFieldGoalAttempts: bl.ThreePointFieldGoalAttempts,
		FreeThrows:                  bl.FreeThrows,
		FreeThrowAttempts:           bl.FreeThrowAttempts,
		OffensiveRebounds:           bl.OffensiveRebounds,
		DefensiveRebounds:           bl.DefensiveRebounds,
		TotalRebounds:               bl.TotalRebounds,
		Assists:                     bl.Assists,
		Steals:                      bl.Steals,
		Blocks:                      bl.Blocks,
		Turnovers:                   bl.Turnovers,
		FoulsCommitted:              bl.PersonalFouls,
		Points:                      bl.Points,
	}

	if bl.SecondsPlayed != nil {
		box.SecondsPlayed = sql.NullInt32{Int32: int32(*bl.SecondsPlayed), Valid: true}
	}

	box.ComputeFantasyPoints()
	return box
}
