package importer

import (
	"context"
	"fmt"
	"time"

	"nbadfs/ingestion/internal/client"
	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/repository"
	"nbadfs/ingestion/internal/resolve"

	"github.com/rs/zerolog/log"
)

// Schedule ingests season schedules: one Game row per scheduled event.
// Games must exist before any box score or salary referencing them can
// resolve.
type Schedule struct {
	db       *repository.Database
	client   *client.Client
	resolver *resolve.Resolver
}

// NewSchedule creates a schedule importer
func NewSchedule(db *repository.Database, c *client.Client, r *resolve.Resolver) *Schedule {
	return &Schedule{db: db, client: c, resolver: r}
}

// Run ingests schedules for every season start year in
// [firstStartYear, lastStartYear] inclusive. Each season is one
// transaction.
func (i *Schedule) Run(ctx context.Context, firstStartYear, lastStartYear int) (*Report, error) {
	start := time.Now()
	report := &Report{Importer: "schedule"}

	for year := firstStartYear; year <= lastStartYear; year++ {
		season, err := i.db.Seasons.GetOrCreate(ctx, year)
		if err != nil {
			return report, fmt.Errorf("failed to get or create season %d: %w", year, err)
		}

		events, err := i.client.FetchSchedule(ctx, year)
		if err != nil {
			return report, fmt.Errorf("failed to fetch schedule for season %d: %w", year, err)
		}

		log.Info().
			Int("season", year).
			Int("events", len(events)).
			Msg("Schedule fetched")

		err = i.db.WithTx(ctx, func(tx *repository.Database) error {
			for _, event := range events {
				skip := func(miss *resolve.Miss) {
					report.Skipped++
					metrics.RecordsSkipped.WithLabelValues("schedule", string(miss.Reason)).Inc()
					log.Warn().
						Str("home", event.HomeTeamName).
						Str("away", event.AwayTeamName).
						Str("miss", miss.String()).
						Msg("Skipping schedule event")
				}

				home, miss, err := i.resolver.TeamByName(ctx, event.HomeTeamName)
				if err != nil {
					return err
				}
				if miss != nil {
					skip(miss)
					continue
				}

				away, miss, err := i.resolver.TeamByName(ctx, event.AwayTeamName)
				if err != nil {
					return err
				}
				if miss != nil {
					skip(miss)
					continue
				}

				if err := tx.Games.Upsert(ctx, event.ToGame(home.ID, away.ID, season.ID)); err != nil {
					return err
				}
				report.Resolved++
				metrics.RecordsResolved.WithLabelValues("schedule").Inc()
			}
			return nil
		})
		if err != nil {
			return report, fmt.Errorf("failed to ingest schedule for season %d: %w", year, err)
		}
	}

	metrics.ImportDuration.WithLabelValues("schedule").Observe(time.Since(start).Seconds())
	report.Log()
	return report, nil
}
