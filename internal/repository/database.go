package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Querier is the subset of pgx operations the repositories use. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so a Database view can be bound
// to either the pool or an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Database holds the database connection pool and provides access to repositories
type Database struct {
	Pool *pgxpool.Pool
	q    Querier

	// Repositories
	Teams     *TeamRepository
	Positions *PositionRepository
	Seasons   *SeasonRepository
	Sites     *SiteRepository
	Games     *GameRepository
	Players   *PlayerRepository
	BoxScores *BoxScoreRepository
	Salaries  *SalaryRepository
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// NewDatabase creates a new database connection pool and initializes repositories
func NewDatabase(ctx context.Context, cfg Config) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Set pool configuration
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("Successfully connected to database")

	db := &Database{
		Pool: pool,
		q:    pool,
	}
	db.initRepositories()

	return db, nil
}

func (db *Database) initRepositories() {
	db.Teams = &TeamRepository{db: db}
	db.Positions = &PositionRepository{db: db}
	db.Seasons = &SeasonRepository{db: db}
	db.Sites = &SiteRepository{db: db}
	db.Games = &GameRepository{db: db}
	db.Players = &PlayerRepository{db: db}
	db.BoxScores = &BoxScoreRepository{db: db}
	db.Salaries = &SalaryRepository{db: db}
}

// WithTx runs fn against a Database view bound to a single transaction.
// The importers wrap each ingested day in one of these so a partial-day
// failure rolls back cleanly instead of leaving a half-ingested day.
// Resolution misses are not errors and still commit the day.
func (db *Database) WithTx(ctx context.Context, fn func(tx *Database) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txDB := &Database{Pool: db.Pool, q: tx}
	txDB.initRepositories()

	if err := fn(txDB); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		log.Info().Msg("Database connection pool closed")
	}
}

// Health checks if the database is healthy
func (db *Database) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// PoolStats returns database pool statistics
func (db *Database) PoolStats() map[string]interface{} {
	stat := db.Pool.Stat()
	return map[string]interface{}{
		"total_conns":    stat.TotalConns(),
		"acquired_conns": stat.AcquiredConns(),
		"idle_conns":     stat.IdleConns(),
		"max_conns":      stat.MaxConns(),
	}
}
