package importer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"nbadfs/ingestion/internal/client"
	"nbadfs/ingestion/internal/gameday"
	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"
	"nbadfs/ingestion/internal/normalize"
	"nbadfs/ingestion/internal/repository"
	"nbadfs/ingestion/internal/resolve"

	"github.com/rs/zerolog/log"
)

// BoxScores drives per-day box-score ingestion. The source is queried
// once per distinct game day rather than once per game, and each day is
// ingested inside one transaction.
type BoxScores struct {
	db       *repository.Database
	client   *client.Client
	resolver *resolve.Resolver
	loc      *time.Location
}

// NewBoxScores creates a box-score importer
func NewBoxScores(db *repository.Database, c *client.Client, r *resolve.Resolver, loc *time.Location) *BoxScores {
	return &BoxScores{db: db, client: c, resolver: r, loc: loc}
}

// Run ingests box scores for every game in [min, max] that has none
// yet. Resolution misses skip single records; re-running over an
// already-ingested range is a no-op.
func (i *BoxScores) Run(ctx context.Context, min, max time.Time) (*Report, error) {
	start := time.Now()
	report := &Report{Importer: "box_scores"}

	games, err := i.db.Games.ListMissingBoxScores(ctx, min, max)
	if err != nil {
		return report, fmt.Errorf("failed to find games needing box scores: %w", err)
	}

	if len(games) == 0 {
		log.Debug().
			Time("min", min).
			Time("max", max).
			Msg("No games need box scores")
		return report, nil
	}

	// Project each game onto its local calendar day to build the
	// minimal set of distinct days to fetch
	daySet := make(map[gameday.Day]struct{})
	for _, game := range games {
		daySet[gameday.Of(game.StartTime, i.loc)] = struct{}{}
	}

	days := make([]gameday.Day, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(a, b int) bool { return days[b].After(days[a]) })

	log.Info().
		Int("games", len(games)).
		Int("days", len(days)).
		Msg("Box score ingestion starting")

	for _, day := range days {
		dayReport, err := i.runDay(ctx, day)
		if err != nil {
			return report, fmt.Errorf("failed to ingest box scores for %s: %w", day, err)
		}
		report.Merge(dayReport)
	}

	metrics.ImportDuration.WithLabelValues("box_scores").Observe(time.Since(start).Seconds())
	report.Log()
	return report, nil
}

// runDay fetches one day's stat lines and ingests them in one
// transaction
func (i *BoxScores) runDay(ctx context.Context, day gameday.Day) (*Report, error) {
	report := &Report{Importer: "box_scores"}

	lines, err := i.client.FetchBoxScores(ctx, day)
	if err != nil {
		return report, err
	}

	windowStart, windowEnd := day.Window(i.loc)

	err = i.db.WithTx(ctx, func(tx *repository.Database) error {
		for _, line := range lines {
			box, miss, err := i.resolveLine(ctx, &line, windowStart, windowEnd)
			if err != nil {
				return err
			}
			if miss != nil {
				// A single unresolved record never aborts the day
				report.Skipped++
				metrics.RecordsSkipped.WithLabelValues("box_scores", string(miss.Reason)).Inc()
				log.Debug().
					Str("player", line.FirstName+" "+line.LastName).
					Str("team", line.Team).
					Str("miss", miss.String()).
					Msg("Skipping box score line")
				continue
			}

			if err := tx.BoxScores.Upsert(ctx, box); err != nil {
				return err
			}
			report.Resolved++
			metrics.RecordsResolved.WithLabelValues("box_scores").Inc()
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	log.Info().
		Str("day", day.String()).
		Int("resolved", report.Resolved).
		Int("skipped", report.Skipped).
		Msg("Box score day ingested")

	return report, nil
}

// resolveLine maps one raw stat line onto canonical entities and builds
// the row to upsert, with the derived fantasy points computed from the
// raw stats
func (i *BoxScores) resolveLine(ctx context.Context, line *models.BoxScoreLineInput, windowStart, windowEnd time.Time) (*models.BoxScore, *resolve.Miss, error) {
	teamAbbr := normalize.TeamAbbreviation(normalize.VendorBoxScore, line.Team)
	team, miss, err := i.resolver.Team(ctx, teamAbbr)
	if err != nil || miss != nil {
		return nil, miss, err
	}

	opponentAbbr := normalize.TeamAbbreviation(normalize.VendorBoxScore, line.Opponent)
	opponent, miss, err := i.resolver.Team(ctx, opponentAbbr)
	if err != nil || miss != nil {
		return nil, miss, err
	}

	firstName, lastName := normalize.PlayerName(normalize.VendorBoxScore, line.FirstName, line.LastName)
	player, miss, err := i.resolver.Player(ctx, firstName, lastName, team.ID)
	if err != nil || miss != nil {
		return nil, miss, err
	}

	game, miss, err := i.resolver.GameInWindow(ctx, team, opponent, windowStart, windowEnd)
	if err != nil || miss != nil {
		return nil, miss, err
	}

	return line.ToBoxScore(player.ID, game.ID), nil, nil
}
