package repository

import (
	"context"
	"fmt"

	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
)

// SeasonRepository handles season database operations
type SeasonRepository struct {
	db *Database
}

// GetOrCreate returns the season for a start year, creating it if absent
func (r *SeasonRepository) GetOrCreate(ctx context.Context, startYear int) (*models.Season, error) {
	query := `
		INSERT INTO seasons (start_year)
		VALUES ($1)
		ON CONFLICT (start_year) DO UPDATE SET
			updated_at = seasons.updated_at
		RETURNING id, start_year, created_at, updated_at
	`

	var season models.Season
	err := r.db.q.QueryRow(ctx, query, startYear).Scan(
		&season.ID, &season.StartYear, &season.CreatedAt, &season.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create season: %w", err)
	}

	metrics.RowsUpserted.WithLabelValues("seasons").Inc()
	return &season, nil
}

// GetByStartYear retrieves a season by its start year
func (r *SeasonRepository) GetByStartYear(ctx context.Context, startYear int) (*models.Season, error) {
	query := `
		SELECT id, start_year, created_at, updated_at
		FROM seasons
		WHERE start_year = $1
	`

	var season models.Season
	err := r.db.q.QueryRow(ctx, query, startYear).Scan(
		&season.ID, &season.StartYear, &season.CreatedAt, &season.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("season start_year=%d: %w", startYear, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	return &season, nil
}

// SiteRepository handles daily fantasy sports site database operations
type SiteRepository struct {
	db *Database
}

// Upsert inserts or updates a site by its unique name
func (r *SiteRepository) Upsert(ctx context.Context, site *models.Site) error {
	query := `
		INSERT INTO dfs_sites (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.q.QueryRow(ctx, query, site.Name).
		Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert site: %w", err)
	}

	metrics.RowsUpserted.WithLabelValues("dfs_sites").Inc()
	return nil
}

// GetByName retrieves a site by name
func (r *SiteRepository) GetByName(ctx context.Context, name string) (*models.Site, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM dfs_sites
		WHERE name = $1
	`

	var site models.Site
	err := r.db.q.QueryRow(ctx, query, name).Scan(
		&site.ID, &site.Name, &site.CreatedAt, &site.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("site name=%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}

	return &site, nil
}
