package repository

import (
	"context"
	"fmt"
	"time"

	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
)

// BoxScoreRepository handles box score database operations
type BoxScoreRepository struct {
	db *Database
}

const boxScoreColumns = `id, player_id, game_id, seconds_played,
	field_goals, field_goal_attempts,
	three_point_field_goals, three_point_field_goal_attempts,
	free_throws, free_throw_attempts,
	offensive_rebounds, defensive_rebounds, total_rebounds,
	assists, steals, blocks, turnovers, fouls_committed, points,
	fantasy_points, created_at, updated_at`

// Upsert inserts or updates a box score by its natural key
// (player, game). Every raw field plus the derived fantasy-points value
// is overwritten on conflict: there are no partial updates, so the
// stored derived score always matches the stored raw stats.
func (r *BoxScoreRepository) Upsert(ctx context.Context, box *models.BoxScore) error {
	query := `
		INSERT INTO box_scores (
			player_id, game_id, seconds_played,
			field_goals, field_goal_attempts,
			three_point_field_goals, three_point_field_goal_attempts,
			free_throws, free_throw_attempts,
			offensive_rebounds, defensive_rebounds, total_rebounds,
			assists, steals, blocks, turnovers, fouls_committed, points,
			fantasy_points
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (player_id, game_id) DO UPDATE SET
			seconds_played = EXCLUDED.seconds_played,
			field_goals = EXCLUDED.field_goals,
			field_goal_attempts = EXCLUDED.field_goal_attempts,
			three_point_field_goals = EXCLUDED.three_point_field_goals,
			three_point_field_goal_attempts = EXCLUDED.three_point_field_goal_attempts,
			free_throws = EXCLUDED.free_throws,
			free_throw_attempts = EXCLUDED.free_throw_attempts,
			offensive_rebounds = EXCLUDED.offensive_rebounds,
			defensive_rebounds = EXCLUDED.defensive_rebounds,
			total_rebounds = EXCLUDED.total_rebounds,
			assists = EXCLUDED.assists,
			steals = EXCLUDED.steals,
			blocks = EXCLUDED.blocks,
			turnovers = EXCLUDED.turnovers,
			fouls_committed = EXCLUDED.fouls_committed,
			points = EXCLUDED.points,
			fantasy_points = EXCLUDED.fantasy_points,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.q.QueryRow(
		ctx, query,
		box.PlayerID, box.GameID, box.SecondsPlayed,
		box.FieldGoals, box.FieldGoalAttempts,
		box.ThreePointFieldGoals, box.ThreePointFieldGoalAttempts,
		box.FreeThrows, box.FreeThrowAttempts,
		box.OffensiveRebounds, box.DefensiveRebounds, box.TotalRebounds,
		box.Assists, box.Steals, box.Blocks, box.Turnovers,
		box.FoulsCommitted, box.Points, box.FantasyPoints,
	).Scan(&box.ID, &box.CreatedAt, &box.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert box score: %w", err)
	}

	metrics.RowsUpserted.WithLabelValues("box_scores").Inc()
	return nil
}

// GetByPlayerAndGame retrieves a box score by its natural key
func (r *BoxScoreRepository) GetByPlayerAndGame(ctx context.Context, playerID, gameID int) (*models.BoxScore, error) {
	query := `SELECT ` + boxScoreColumns + ` FROM box_scores WHERE player_id = $1 AND game_id = $2`

	var box models.BoxScore
	err := r.db.q.QueryRow(ctx, query, playerID, gameID).Scan(
		&box.ID, &box.PlayerID, &box.GameID, &box.SecondsPlayed,
		&box.FieldGoals, &box.FieldGoalAttempts,
		&box.ThreePointFieldGoals, &box.ThreePointFieldGoalAttempts,
		&box.FreeThrows, &box.FreeThrowAttempts,
		&box.OffensiveRebounds, &box.DefensiveRebounds, &box.TotalRebounds,
		&box.Assists, &box.Steals, &box.Blocks, &box.Turnovers,
		&box.FoulsCommitted, &box.Points, &box.FantasyPoints,
		&box.CreatedAt, &box.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("box score player_id=%d game_id=%d: %w", playerID, gameID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get box score: %w", err)
	}

	return &box, nil
}

// BoxScoreFilter enumerates the optional filter fields for box score queries
type BoxScoreFilter struct {
	FirstName        *string
	LastName         *string
	TeamAbbreviation *string
	StartAfter       *time.Time
	StartBefore      *time.Time
}

// List retrieves box scores matching the filter, most recent game first
func (r *BoxScoreRepository) List(ctx context.Context, filter BoxScoreFilter) ([]*models.BoxScore, error) {
	query := `
		SELECT b.id, b.player_id, b.game_id, b.seconds_played,
			b.field_goals, b.field_goal_attempts,
			b.three_point_field_goals, b.three_point_field_goal_attempts,
			b.free_throws, b.free_throw_attempts,
			b.offensive_rebounds, b.defensive_rebounds, b.total_rebounds,
			b.assists, b.steals, b.blocks, b.turnovers, b.fouls_committed, b.points,
			b.fantasy_points, b.created_at, b.updated_at
		FROM box_scores b
		JOIN players p ON p.id = b.player_id
		JOIN teams t ON t.id = p.team_id
		JOIN games g ON g.id = b.game_id
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
	if filter.StartAfter != nil {
		args = append(args, filter.StartAfter.UTC())
		query += fmt.Sprintf(" AND g.start_time >= $%d", len(args))
	}
	if filter.StartBefore != nil {
		args = append(args, filter.StartBefore.UTC())
		query += fmt.Sprintf(" AND g.start_time <= $%d", len(args))
	}

	query += " ORDER BY g.start_time DESC, p.last_name, p.first_name"

	rows, err := r.db.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list box scores: %w", err)
	}
	defer rows.Close()

	var boxes []*models.BoxScore
	for rows.Next() {
		var box models.BoxScore
		err := rows.Scan(
			&box.ID, &box.PlayerID, &box.GameID, &box.SecondsPlayed,
			&box.FieldGoals, &box.FieldGoalAttempts,
			&box.ThreePointFieldGoals, &box.ThreePointFieldGoalAttempts,
			&box.FreeThrows, &box.FreeThrowAttempts,
			&box.OffensiveRebounds, &box.DefensiveRebounds, &box.TotalRebounds,
			&box.Assists, &box.Steals, &box.Blocks, &box.Turnovers,
			&box.FoulsCommitted, &box.Points, &box.FantasyPoints,
			&box.CreatedAt, &box.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan box score: %w", err)
		}
		boxes = append(boxes, &box)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating box scores: %w", err)
	}

	return boxes, nil
}

// Count returns the total number of box scores
func (r *BoxScoreRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.q.QueryRow(ctx, `SELECT COUNT(*) FROM box_scores`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count box scores: %w", err)
	}

	return count, nil
}
