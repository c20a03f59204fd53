package repository

import (
	"context"
	"fmt"
	"time"

	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

const gameColumns = `id, home_team_id, away_team_id, start_time, season_id, created_at, updated_at`

// Upsert inserts or updates a game by its natural key
// (home team, away team, start instant, season)
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (home_team_id, away_team_id, start_time, season_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (home_team_id, away_team_id, start_time, season_id) DO UPDATE SET
			updated_at = games.updated_at
		RETURNING id, created_at, updated_at
	`

	err := r.db.q.QueryRow(
		ctx, query,
		game.HomeTeamID, game.AwayTeamID, game.StartTime.UTC(), game.SeasonID,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	metrics.RowsUpserted.WithLabelValues("games").Inc()
	log.Debug().
		Int("id", game.ID).
		Int("home_team_id", game.HomeTeamID).
		Int("away_team_id", game.AwayTeamID).
		Time("start_time", game.StartTime).
		Msg("Game upserted")

	return nil
}

// ListByPairInWindow retrieves every game between two teams, in either
// home/away order, whose start instant falls inside the half-open UTC
// window [start, end). The resolver treats zero or multiple results as
// a miss; this method just reports what is there.
func (r *GameRepository) ListByPairInWindow(ctx context.Context, teamAID, teamBID int, start, end time.Time) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE ((home_team_id = $1 AND away_team_id = $2)
		    OR (home_team_id = $2 AND away_team_id = $1))
		  AND start_time >= $3
		  AND start_time < $4
		ORDER BY start_time
	`

	rows, err := r.db.q.Query(ctx, query, teamAID, teamBID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list games in window: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GetByMatchupAt retrieves the game with an exact home team, away team,
// and start instant. Used for vendor rows that carry a full local start
// time.
func (r *GameRepository) GetByMatchupAt(ctx context.Context, homeTeamID, awayTeamID int, start time.Time) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE home_team_id = $1 AND away_team_id = $2 AND start_time = $3
	`

	var game models.Game
	err := r.db.q.QueryRow(ctx, query, homeTeamID, awayTeamID, start.UTC()).Scan(
		&game.ID, &game.HomeTeamID, &game.AwayTeamID,
		&game.StartTime, &game.SeasonID, &game.CreatedAt, &game.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("game home=%d away=%d start=%s: %w",
			homeTeamID, awayTeamID, start.UTC().Format(time.RFC3339), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// ListMissingBoxScores retrieves games in [min, max] that have no box
// score for any player. Absence of rows is the proxy for "day not yet
// ingested".
func (r *GameRepository) ListMissingBoxScores(ctx context.Context, min, max time.Time) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games g
		WHERE g.start_time >= $1
		  AND g.start_time <= $2
		  AND NOT EXISTS (
			SELECT 1 FROM box_scores b WHERE b.game_id = g.id
		  )
		ORDER BY g.start_time
	`

	rows, err := r.db.q.Query(ctx, query, min.UTC(), max.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list games missing box scores: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GameFilter enumerates the optional filter fields for game queries.
// Nil fields are ignored; set fields are translated to WHERE clauses.
type GameFilter struct {
	HomeTeamAbbreviation *string
	AwayTeamAbbreviation *string
	StartAfter           *time.Time
	StartBefore          *time.Time
	SeasonStartYear      *int
}

// List retrieves games matching the filter, ordered by start instant
func (r *GameRepository) List(ctx context.Context, filter GameFilter) ([]*models.Game, error) {
	query := `
		SELECT g.id, g.home_team_id, g.away_team_id, g.start_time, g.season_id, g.created_at, g.updated_at
		FROM games g
		JOIN teams home ON home.id = g.home_team_id
		JOIN teams away ON away.id = g.away_team_id
		JOIN seasons s ON s.id = g.season_id
		WHERE 1=1
	`
	var args []any

	if filter.HomeTeamAbbreviation != nil {
		args = append(args, *filter.HomeTeamAbbreviation)
		query += fmt.Sprintf(" AND home.abbreviation = $%d", len(args))
	}
	if filter.AwayTeamAbbreviation != nil {
		args = append(args, *filter.AwayTeamAbbreviation)
		query += fmt.Sprintf(" AND away.abbreviation = $%d", len(args))
	}
	if filter.StartAfter != nil {
		args = append(args, filter.StartAfter.UTC())
		query += fmt.Sprintf(" AND g.start_time >= $%d", len(args))
	}
	if filter.StartBefore != nil {
		args = append(args, filter.StartBefore.UTC())
		query += fmt.Sprintf(" AND g.start_time <= $%d", len(args))
	}
	if filter.SeasonStartYear != nil {
		args = append(args, *filter.SeasonStartYear)
		query += fmt.Sprintf(" AND s.start_year = $%d", len(args))
	}

	query += " ORDER BY g.start_time"

	rows, err := r.db.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// Count returns the total number of games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.q.QueryRow(ctx, `SELECT COUNT(*) FROM games`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}

	return count, nil
}

func scanGames(rows pgx.Rows) ([]*models.Game, error) {
	var games []*models.Game
	for rows.Next() {
		var game models.Game
		err := rows.Scan(
			&game.ID, &game.HomeTeamID, &game.AwayTeamID,
			&game.StartTime, &game.SeasonID, &game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}
