package repository

import (
	"context"
	"fmt"

	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
)

// PositionRepository handles position database operations
type PositionRepository struct {
	db *Database
}

// Upsert inserts or updates a position by its natural key (abbreviation)
func (r *PositionRepository) Upsert(ctx context.Context, position *models.Position) error {
	query := `
		INSERT INTO positions (name, abbreviation)
		VALUES ($1, $2)
		ON CONFLICT (abbreviation) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.q.QueryRow(ctx, query, position.Name, position.Abbreviation).
		Scan(&position.ID, &position.CreatedAt, &position.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}

	metrics.RowsUpserted.WithLabelValues("positions").Inc()
	return nil
}

// GetByAbbreviation retrieves a position by its abbreviation
func (r *PositionRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (*models.Position, error) {
	query := `
		SELECT id, name, abbreviation, created_at, updated_at
		FROM positions
		WHERE abbreviation = $1
	`

	var position models.Position
	err := r.db.q.QueryRow(ctx, query, abbreviation).Scan(
		&position.ID, &position.Name, &position.Abbreviation,
		&position.CreatedAt, &position.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("position abbreviation=%s: %w", abbreviation, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	return &position, nil
}

// List retrieves all positions ordered by name
func (r *PositionRepository) List(ctx context.Context) ([]*models.Position, error) {
	query := `
		SELECT id, name, abbreviation, created_at, updated_at
		FROM positions
		ORDER BY name
	`

	rows, err := r.db.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []*models.Position
	for rows.Next() {
		var position models.Position
		err := rows.Scan(
			&position.ID, &position.Name, &position.Abbreviation,
			&position.CreatedAt, &position.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, &position)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}
