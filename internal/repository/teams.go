package repository

import (
	"context"
	"fmt"

	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TeamRepository handles team database operations
type TeamRepository struct {
	db *Database
}

// Upsert inserts or updates a team by its natural key (abbreviation).
// Repeated upserts of identical data are a no-op state-wise.
func (r *TeamRepository) Upsert(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, abbreviation)
		VALUES ($1, $2)
		ON CONFLICT (abbreviation) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.q.QueryRow(ctx, query, team.Name, team.Abbreviation).
		Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}

	metrics.RowsUpserted.WithLabelValues("teams").Inc()
	log.Debug().
		Int("id", team.ID).
		Str("abbreviation", team.Abbreviation).
		Str("name", team.Name).
		Msg("Team upserted")

	return nil
}

// GetByAbbreviation retrieves a team by its canonical abbreviation
func (r *TeamRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (*models.Team, error) {
	query := `
		SELECT id, name, abbreviation, created_at, updated_at
		FROM teams
		WHERE abbreviation = $1
	`

	var team models.Team
	err := r.db.q.QueryRow(ctx, query, abbreviation).Scan(
		&team.ID, &team.Name, &team.Abbreviation, &team.CreatedAt, &team.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("team abbreviation=%s: %w", abbreviation, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// GetByName retrieves a team by its full franchise name
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	query := `
		SELECT id, name, abbreviation, created_at, updated_at
		FROM teams
		WHERE name = $1
	`

	var team models.Team
	err := r.db.q.QueryRow(ctx, query, name).Scan(
		&team.ID, &team.Name, &team.Abbreviation, &team.CreatedAt, &team.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("team name=%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// List retrieves all teams ordered by name
func (r *TeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT id, name, abbreviation, created_at, updated_at
		FROM teams
		ORDER BY name
	`

	rows, err := r.db.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var team models.Team
		err := rows.Scan(&team.ID, &team.Name, &team.Abbreviation, &team.CreatedAt, &team.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// Count returns the total number of teams
func (r *TeamRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.q.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}

	return count, nil
}
