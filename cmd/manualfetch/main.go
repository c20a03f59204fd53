// Command manualfetch runs a one-off ingestion pass over an explicit
// date range. Useful for backfilling historical days or re-running a
// day whose salary sheets arrived late; every write is an upsert, so
// re-running a range is idempotent.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"nbadfs/ingestion/internal/cache"
	"nbadfs/ingestion/internal/client"
	"nbadfs/ingestion/internal/config"
	"nbadfs/ingestion/internal/gameday"
	"nbadfs/ingestion/internal/importer"
	"nbadfs/ingestion/internal/repository"
	"nbadfs/ingestion/internal/resolve"

	"github.com/rs/zerolog/log"
)

func main() {
	var (
		startFlag  = flag.String("start", "", "first day to ingest (YYYY-MM-DD, required)")
		endFlag    = flag.String("end", "", "last day to ingest (YYYY-MM-DD, defaults to start)")
		refresh    = flag.Bool("refresh", false, "refresh schedule and rosters before importing")
		skipBox    = flag.Bool("skip-box-scores", false, "skip the box score import")
		skipSalary = flag.Bool("skip-salaries", false, "skip the salary import")
	)
	flag.Parse()

	if *startFlag == "" {
		log.Fatal().Msg("-start is required")
	}

	startDay, err := gameday.Parse(*startFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid -start")
	}
	endDay := startDay
	if *endFlag != "" {
		endDay, err = gameday.Parse(*endFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -end")
		}
	}
	if startDay.After(endDay) {
		log.Fatal().Str("start", startDay.String()).Str("end", endDay.String()).Msg("Start day is after end day")
	}

	ctx := context.Background()
	cfg := config.MustLoad()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     fmt.Sprintf("%d", cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Validating service health...")
	if err := db.Health(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}

	redisCache, err := cache.NewRedisCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     fmt.Sprintf("%d", cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
	} else {
		defer redisCache.Close()
	}

	resolver := resolve.New(db, redisCache)
	loc := cfg.Location()

	if err := importer.SeedReferenceData(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed reference data")
	}

	if *refresh {
		feedClient := client.NewClient(cfg.StatsFeedBaseURL, cfg.StatsFeedAPIKey, cfg.StatsFeedTimeout)

		year := cfg.SeasonStartYear
		if _, err := importer.NewSchedule(db, feedClient, resolver).Run(ctx, year, year); err != nil {
			log.Fatal().Err(err).Msg("Schedule refresh failed")
		}
		if _, err := importer.NewRosters(db, feedClient, resolver).Run(ctx, year); err != nil {
			log.Fatal().Err(err).Msg("Roster refresh failed")
		}
	}

	if !*skipBox {
		feedClient := client.NewClient(cfg.StatsFeedBaseURL, cfg.StatsFeedAPIKey, cfg.StatsFeedTimeout)
		boxScores := importer.NewBoxScores(db, feedClient, resolver, loc)

		min, _ := startDay.Window(loc)
		_, max := endDay.Window(loc)
		report, err := boxScores.Run(ctx, min, max)
		if err != nil {
			log.Fatal().Err(err).Msg("Box score import failed")
		}
		log.Info().
			Int("resolved", report.Resolved).
			Int("skipped", report.Skipped).
			Int("failed", report.Failed).
			Msg("Box score import complete")
	}

	if !*skipSalary {
		salaries := importer.NewSalaries(db, resolver, loc, cfg.SalaryDir)
		report, err := salaries.Run(ctx, startDay, endDay)
		if err != nil {
			log.Fatal().Err(err).Msg("Salary import failed")
		}
		log.Info().
			Int("resolved", report.Resolved).
			Int("skipped", report.Skipped).
			Int("failed", report.Failed).
			Msg("Salary import complete")
	}

	summarize(ctx, db, startDay, endDay, loc)
}

// summarize prints row counts for the ingested range
func summarize(ctx context.Context, db *repository.Database, startDay, endDay gameday.Day, loc *time.Location) {
	windowStart, _ := startDay.Window(loc)
	_, windowEnd := endDay.Window(loc)

	games, err := db.Games.List(ctx, repository.GameFilter{
		StartAfter:  &windowStart,
		StartBefore: &windowEnd,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to summarize games")
		return
	}

	boxScores, err := db.BoxScores.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count box scores")
		return
	}

	salaries, err := db.Salaries.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count salaries")
		return
	}

	log.Info().
		Str("start", startDay.String()).
		Str("end", endDay.String()).
		Int("games_in_range", len(games)).
		Int("box_scores_total", boxScores).
		Int("salaries_total", salaries).
		Msg("Manual fetch complete.")
}
