package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Stats feed API (schedule, rosters, daily box scores)
	StatsFeedBaseURL string        `envconfig:"STATSFEED_BASE_URL" default:"https://api.statsfeed.example.com/v1/nba"`
	StatsFeedAPIKey  string        `envconfig:"STATSFEED_API_KEY" required:"true"`
	StatsFeedTimeout time.Duration `envconfig:"STATSFEED_TIMEOUT" default:"30s"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"nbadfs"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"nbadfs_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`
	RunMigrations    bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	// Redis (resolver lookup cache; the worker runs without it if absent)
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Ingestion
	LocalTimeZone      string `envconfig:"LOCAL_TIME_ZONE" default:"America/New_York"`
	SalaryDir          string `envconfig:"SALARY_DIR" default:"salaries"`
	SeasonStartYear    int    `envconfig:"SEASON_START_YEAR" default:"2016"`
	BoxScoreLookback   int    `envconfig:"BOX_SCORE_LOOKBACK_DAYS" default:"3"`
	SalaryLookback     int    `envconfig:"SALARY_LOOKBACK_DAYS" default:"3"`
	InitialSyncEnabled bool   `envconfig:"INITIAL_SYNC_ENABLED" default:"true"`

	// Scheduler
	EnableScheduler   bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	NightlyIngestCron string `envconfig:"NIGHTLY_INGEST_CRON" default:"0 6 * * *"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.StatsFeedAPIKey == "" {
		return fmt.Errorf("STATSFEED_API_KEY is required")
	}

	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if _, err := time.LoadLocation(c.LocalTimeZone); err != nil {
		return fmt.Errorf("invalid LOCAL_TIME_ZONE %q: %w", c.LocalTimeZone, err)
	}

	return nil
}

// Location returns the configured local timezone used for game-day
// boundaries. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, _ := time.LoadLocation(c.LocalTimeZone)
	return loc
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
