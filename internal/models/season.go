package models

import "time"

// Season represents an NBA season, identified by its start year
// (the 2015-16 season has StartYear 2015). One row per season.
type Season struct {
	ID        int       `db:"id"`
	StartYear int       `db:"start_year"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Site represents a daily fantasy sports vendor (DraftKings, FanDuel).
type Site struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
