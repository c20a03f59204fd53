package repository

import (
	"context"
	"fmt"

	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *Database
}

const playerColumns = `id, first_name, last_name, team_id, position_id, created_at, updated_at`

// Upsert inserts or updates a player by the natural key
// (first name, last name, team). A traded player becomes a new row under
// his new team; roster ingestion may update the position of an existing
// row.
func (r *PlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (first_name, last_name, team_id, position_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (first_name, last_name, team_id) DO UPDATE SET
			position_id = EXCLUDED.position_id,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.q.QueryRow(
		ctx, query,
		player.FirstName, player.LastName, player.TeamID, player.PositionID,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}

	metrics.RowsUpserted.WithLabelValues("players").Inc()
	log.Debug().
		Int("id", player.ID).
		Str("first_name", player.FirstName).
		Str("last_name", player.LastName).
		Int("team_id", player.TeamID).
		Msg("Player upserted")

	return nil
}

// GetByNameAndTeam retrieves a player by exact first name, last name,
// and team
func (r *PlayerRepository) GetByNameAndTeam(ctx context.Context, firstName, lastName string, teamID int) (*models.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE first_name = $1 AND last_name = $2 AND team_id = $3
	`

	var player models.Player
	err := r.db.q.QueryRow(ctx, query, firstName, lastName, teamID).Scan(
		&player.ID, &player.FirstName, &player.LastName,
		&player.TeamID, &player.PositionID, &player.CreatedAt, &player.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("player %s %s team_id=%d: %w", firstName, lastName, teamID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// PlayerFilter enumerates the optional filter fields for player queries
type PlayerFilter struct {
	FirstName            *string
	LastName             *string
	TeamAbbreviation     *string
	PositionAbbreviation *string
}

// List retrieves players matching the filter, ordered by name
func (r *PlayerRepository) List(ctx context.Context, filter PlayerFilter) ([]*models.Player, error) {
	query := `
		SELECT p.id, p.first_name, p.last_name, p.team_id, p.position_id, p.created_at, p.updated_at
		FROM players p
		JOIN teams t ON t.id = p.team_id
		JOIN positions pos ON pos.id = p.position_id
		WHERE 1=1
	`
	var args []any

	if filter.FirstName != nil {
		args = append(args, *filter.FirstName)
		query += fmt.Sprintf(" AND p.first_name = $%d", len(args))
	}
	if filter.LastName != nil {
		args = append(args, *filter.LastName)
		query += fmt.Sprintf(" AND p.last_name = $%d", len(args))
	}
	if filter.TeamAbbreviation != nil {
		args = append(args, *filter.TeamAbbreviation)
		query += fmt.Sprintf(" AND t.abbreviation = $%d", len(args))
	}
	if filter.PositionAbbreviation != nil {
		args = append(args, *filter.PositionAbbreviation)
		query += fmt.Sprintf(" AND pos.abbreviation = $%d", len(args))
	}

	query += " ORDER BY p.last_name, p.first_name"

	rows, err := r.db.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		var player models.Player
		err := rows.Scan(
			&player.ID, &player.FirstName, &player.LastName,
			&player.TeamID, &player.PositionID, &player.CreatedAt, &player.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, &player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	return players, nil
}

// Count returns the total number of players
func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.q.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}

	return count, nil
}
