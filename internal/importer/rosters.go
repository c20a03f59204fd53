package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nbadfs/ingestion/internal/client"
	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/normalize"
	"nbadfs/ingestion/internal/repository"
	"nbadfs/ingestion/internal/resolve"

	"github.com/rs/zerolog/log"
)

// Rosters ingests per-season player records. Re-running for a season
// may re-home a traded player: the (first, last, team) natural key
// creates a fresh row under the new team.
type Rosters struct {
	db       *repository.Database
	client   *client.Client
	resolver *resolve.Resolver
}

// NewRosters creates a roster importer
func NewRosters(db *repository.Database, c *client.Client, r *resolve.Resolver) *Rosters {
	return &Rosters{db: db, client: c, resolver: r}
}

// Run ingests the roster for one season. The whole season is one
// transaction.
func (i *Rosters) Run(ctx context.Context, seasonStartYear int) (*Report, error) {
	start := time.Now()
	report := &Report{Importer: "rosters"}

	playerSeasons, err := i.client.FetchPlayerSeasons(ctx, seasonStartYear)
	if err != nil {
		return report, fmt.Errorf("failed to fetch rosters for season %d: %w", seasonStartYear, err)
	}

	log.Info().
		Int("season", seasonStartYear).
		Int("players", len(playerSeasons)).
		Msg("Rosters fetched")

	err = i.db.WithTx(ctx, func(tx *repository.Database) error {
		for _, ps := range playerSeasons {
			abbreviation := normalize.TeamAbbreviation(normalize.VendorBoxScore, ps.TeamAbbreviation)
			team, miss, err := i.resolver.Team(ctx, abbreviation)
			if err != nil {
				return err
			}
			if miss != nil {
				report.Skipped++
				metrics.RecordsSkipped.WithLabelValues("rosters", string(miss.Reason)).Inc()
				log.Warn().
					Str("player", ps.FirstName+" "+ps.LastName).
					Str("team", ps.TeamAbbreviation).
					Str("miss", miss.String()).
					Msg("Skipping roster record")
				continue
			}

			positionCode := normalize.PositionCode(ps.Position)
			position, err := i.db.Positions.GetByAbbreviation(ctx, positionCode)
			if errors.Is(err, repository.ErrNotFound) {
				report.Skipped++
				metrics.RecordsSkipped.WithLabelValues("rosters", "position_not_found").Inc()
				log.Warn().
					Str("player", ps.FirstName+" "+ps.LastName).
					Str("position", ps.Position).
					Msg("Skipping roster record with unknown position")
				continue
			}
			if err != nil {
				return err
			}

			if err := tx.Players.Upsert(ctx, ps.ToPlayer(team.ID, position.ID)); err != nil {
				return err
			}
			report.Resolved++
			metrics.RecordsResolved.WithLabelValues("rosters").Inc()
		}
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("failed to ingest rosters for season %d: %w", seasonStartYear, err)
	}

	metrics.ImportDuration.WithLabelValues("rosters").Observe(time.Since(start).Seconds())
	report.Log()
	return report, nil
}
