package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"nbadfs/ingestion/internal/cache"
	"nbadfs/ingestion/internal/client"
	"nbadfs/ingestion/internal/config"
	"nbadfs/ingestion/internal/importer"
	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/repository"
	"nbadfs/ingestion/internal/resolve"
	"nbadfs/ingestion/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting NBA DFS Ingestion Worker")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Str("time_zone", cfg.LocalTimeZone).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	feedClient := client.NewClient(
		cfg.StatsFeedBaseURL,
		cfg.StatsFeedAPIKey,
		cfg.StatsFeedTimeout,
	)
	log.Info().Msg("Stats feed client initialized")

	dbConfig := repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	}

	if cfg.RunMigrations {
		if err := repository.Migrate(dbConfig); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	db, err := repository.NewDatabase(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	redisCache, err := cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     strconv.Itoa(cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
	} else {
		defer redisCache.Close()
		log.Info().Msg("Redis cache connected")
	}

	if cfg.EnableMetrics {
		go startMetricsServer(strconv.Itoa(cfg.MetricsPort))
	}

	// Update system uptime metric
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	resolver := resolve.New(db, redisCache)
	loc := cfg.Location()

	scheduleImporter := importer.NewSchedule(db, feedClient, resolver)
	rosterImporter := importer.NewRosters(db, feedClient, resolver)
	boxScoreImporter := importer.NewBoxScores(db, feedClient, resolver, loc)
	salaryImporter := importer.NewSalaries(db, resolver, loc, cfg.SalaryDir)

	sched := scheduler.NewScheduler(cfg, scheduleImporter, rosterImporter, boxScoreImporter, salaryImporter)

	if cfg.EnableScheduler {
		log.Info().Msg("Starting scheduler...")
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	if cfg.InitialSyncEnabled {
		log.Info().Msg("Running initial data sync...")
		if err := runInitialSync(ctx, db, sched); err != nil {
			log.Error().Err(err).Msg("Initial sync failed, continuing anyway...")
		} else {
			log.Info().Msg("Initial sync completed successfully")
		}
	}

	// Keep running until context is cancelled
	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	// Pretty console logging in development
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// runInitialSync seeds reference data and runs one full ingest cycle so
// a fresh database is usable without waiting for the nightly trigger
func runInitialSync(ctx context.Context, db *repository.Database, sched *scheduler.Scheduler) error {
	if err := importer.SeedReferenceData(ctx, db); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	return sched.RunIngestCycle(ctx)
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port string) {
	http.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
