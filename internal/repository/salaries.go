package repository

import (
	"context"
	"fmt"
	"time"

	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
)

// SalaryRepository handles player salary database operations
type SalaryRepository struct {
	db *Database
}

// Upsert inserts or updates a salary by its natural key
// (site, player, game). The salary value is overwritten on conflict.
func (r *SalaryRepository) Upsert(ctx context.Context, salary *models.PlayerSalary) error {
	query := `
		INSERT INTO player_salaries (site_id, player_id, game_id, salary)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (site_id, player_id, game_id) DO UPDATE SET
			salary = EXCLUDED.salary,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.q.QueryRow(
		ctx, query,
		salary.SiteID, salary.PlayerID, salary.GameID, salary.Salary,
	).Scan(&salary.ID, &salary.CreatedAt, &salary.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert salary: %w", err)
	}

	metrics.RowsUpserted.WithLabelValues("player_salaries").Inc()
	return nil
}

// GetByNaturalKey retrieves a salary row by (site, player, game)
func (r *SalaryRepository) GetByNaturalKey(ctx context.Context, siteID, playerID, gameID int) (*models.PlayerSalary, error) {
	query := `
		SELECT id, site_id, player_id, game_id, salary, created_at, updated_at
		FROM player_salaries
		WHERE site_id = $1 AND player_id = $2 AND game_id = $3
	`

	var salary models.PlayerSalary
	err := r.db.q.QueryRow(ctx, query, siteID, playerID, gameID).Scan(
		&salary.ID, &salary.SiteID, &salary.PlayerID, &salary.GameID,
		&salary.Salary, &salary.CreatedAt, &salary.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("salary site_id=%d player_id=%d game_id=%d: %w",
			siteID, playerID, gameID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salary: %w", err)
	}

	return &salary, nil
}

// SalaryFilter enumerates the optional filter fields for salary queries
type SalaryFilter struct {
	SiteName             *string
	SalaryMin            *int
	SalaryMax            *int
	PositionAbbreviation *string
	StartAfter           *time.Time
	StartBefore          *time.Time
}

// List retrieves salaries matching the filter, highest salary first
func (r *SalaryRepository) List(ctx context.Context, filter SalaryFilter) ([]*models.PlayerSalary, error) {
	query := `
		SELECT ps.id, ps.site_id, ps.player_id, ps.game_id, ps.salary, ps.created_at, ps.updated_at
		FROM player_salaries ps
		JOIN dfs_sites s ON s.id = ps.site_id
		JOIN players p ON p.id = ps.player_id
		JOIN positions pos ON pos.id = p.position_id
		JOIN games g ON g.id = ps.game_id
		WHERE 1=1
	`
	var args []any

	if filter.SiteName != nil {
		args = append(args, *filter.SiteName)
		query += fmt.Sprintf(" AND s.name = $%d", len(args))
	}
	if filter.SalaryMin != nil {
		args = append(args, *filter.SalaryMin)
		query += fmt.Sprintf(" AND ps.salary >= $%d", len(args))
	}
	if filter.SalaryMax != nil {
		args = append(args, *filter.SalaryMax)
		query += fmt.Sprintf(" AND ps.salary <= $%d", len(args))
	}
	if filter.PositionAbbreviation != nil {
		args = append(args, *filter.PositionAbbreviation)
		query += fmt.Sprintf(" AND pos.abbreviation = $%d", len(args))
	}
	if filter.StartAfter != nil {
		args = append(args, filter.StartAfter.UTC())
		query += fmt.Sprintf(" AND g.start_time >= $%d", len(args))
	}
	if filter.StartBefore != nil {
		args = append(args, filter.StartBefore.UTC())
		query += fmt.Sprintf(" AND g.start_time <= $%d", len(args))
	}

	query += " ORDER BY g.start_time DESC, ps.salary DESC"

	rows, err := r.db.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	var salaries []*models.PlayerSalary
	for rows.Next() {
		var salary models.PlayerSalary
		err := rows.Scan(
			&salary.ID, &salary.SiteID, &salary.PlayerID, &salary.GameID,
			&salary.Salary, &salary.CreatedAt, &salary.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, &salary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salaries: %w", err)
	}

	return salaries, nil
}

// Count returns the total number of salary rows
func (r *SalaryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.q.QueryRow(ctx, `SELECT COUNT(*) FROM player_salaries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count salaries: %w", err)
	}

	return count, nil
}
