package models

import "time"

// PlayerSalary represents one vendor's priced slot for a player in a
// specific game. The natural key is (site, player, game); the salary
// value is overwritten on conflict.
type PlayerSalary struct {
	ID        int       `db:"id"`
	SiteID    int       `db:"site_id"`
	PlayerID  int       `db:"player_id"`
	GameID    int       `db:"game_id"`
	Salary    int       `db:"salary"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
