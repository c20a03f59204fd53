package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"nbadfs/ingestion/internal/gameday"
	"nbadfs/ingestion/internal/metrics"
	"nbadfs/ingestion/internal/models"
	"nbadfs/ingestion/internal/normalize"
	"nbadfs/ingestion/internal/repository"
	"nbadfs/ingestion/internal/resolve"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// salaryRow is one parsed price-sheet row before normalization
type salaryRow struct {
	firstName string
	lastName  string
	awayAbbr  string
	homeAbbr  string
	teamAbbr  string
	salary    int
	// startClock is the local wall-clock start ("7:00PM") for vendors
	// whose sheets carry it; empty means match by full-day window
	startClock string
}

// vendor describes one salary-sheet layout: where its files live, which
// normalization tables apply, and how to extract a row
type vendor struct {
	site     string
	source   normalize.Vendor
	dir      string
	parseRow func(record []string) (*salaryRow, error)
}

// parseDraftKingsRow extracts a row from the DraftKings export layout:
// column 1 holds "First Last", column 2 the salary, column 3 the
// matchup as "AWY@HOM H:MMPM" in local time, column 5 the player's team
func parseDraftKingsRow(record []string) (*salaryRow, error) {
	if len(record) < 6 {
		return nil, fmt.Errorf("expected at least 6 columns, got %d", len(record))
	}

	names := strings.SplitN(strings.TrimSpace(record[1]), " ", 3)
	if len(names) < 2 {
		return nil, fmt.Errorf("unsplittable player name %q", record[1])
	}

	gameInfo := strings.Fields(record[3])
	if len(gameInfo) < 2 {
		return nil, fmt.Errorf("malformed game info %q", record[3])
	}
	matchup := strings.Split(gameInfo[0], "@")
	if len(matchup) != 2 {
		return nil, fmt.Errorf("malformed matchup %q", gameInfo[0])
	}

	salary, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, fmt.Errorf("invalid salary %q: %w", record[2], err)
	}

	return &salaryRow{
		firstName:  names[0],
		lastName:   names[1],
		awayAbbr:   strings.ToUpper(matchup[0]),
		homeAbbr:   strings.ToUpper(matchup[1]),
		teamAbbr:   strings.ToUpper(strings.TrimSpace(record[5])),
		salary:     salary,
		startClock: gameInfo[1],
	}, nil
}

// parseFanDuelRow extracts a row from the FanDuel export layout:
// columns 2/3 hold first/last name, column 6 the salary, column 7 the
// matchup as "AWY@HOM" with no start time, column 8 the player's team
func parseFanDuelRow(record []string) (*salaryRow, error) {
	if len(record) < 9 {
		return nil, fmt.Errorf("expected at least 9 columns, got %d", len(record))
	}

	matchup := strings.Split(strings.TrimSpace(record[7]), "@")
	if len(matchup) != 2 {
		return nil, fmt.Errorf("malformed matchup %q", record[7])
	}

	salary, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil {
		return nil, fmt.Errorf("invalid salary %q: %w", record[6], err)
	}

	return &salaryRow{
		firstName: strings.TrimSpace(record[2]),
		lastName:  strings.TrimSpace(record[3]),
		awayAbbr:  strings.ToUpper(matchup[0]),
		homeAbbr:  strings.ToUpper(matchup[1]),
		teamAbbr:  strings.ToUpper(strings.TrimSpace(record[8])),
		salary:    salary,
	}, nil
}

// Salaries ingests per-vendor daily price sheets. Both vendors run
// through the same pipeline parameterized by their vendor descriptor;
// unresolved rows go to a per-vendor append-only diagnostic log and
// never abort the batch.
type Salaries struct {
	db       *repository.Database
	resolver *resolve.Resolver
	loc      *time.Location
	dir      string
	vendors  []vendor
}

// NewSalaries creates a salary importer rooted at dir, which holds one
// subdirectory of YYYY-MM-DD.csv files per vendor
func NewSalaries(db *repository.Database, r *resolve.Resolver, loc *time.Location, dir string) *Salaries {
	return &Salaries{
		db:       db,
		resolver: r,
		loc:      loc,
		dir:      dir,
		vendors: []vendor{
			{site: SiteDraftKings, source: normalize.VendorDraftKings, dir: "draftkings", parseRow: parseDraftKingsRow},
			{site: SiteFanDuel, source: normalize.VendorFanDuel, dir: "fanduel", parseRow: parseFanDuelRow},
		},
	}
}

// Run ingests every calendar day in [startDay, endDay] inclusive for
// both vendors. Diagnostic logs are opened once per invocation;
// concurrent invocations against the same logs must be serialized by
// the caller.
func (i *Salaries) Run(ctx context.Context, startDay, endDay gameday.Day) (*Report, error) {
	start := time.Now()
	report := &Report{Importer: "salaries"}

	sites := make(map[string]*models.Site, len(i.vendors))
	diags := make(map[string]zerolog.Logger, len(i.vendors))
	files := make([]*os.File, 0, len(i.vendors))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for _, v := range i.vendors {
		// A missing site row means bootstrap never ran; that is a
		// configuration error, not a miss
		site, err := i.db.Sites.GetByName(ctx, v.site)
		if err != nil {
			return report, fmt.Errorf("failed to look up site %s: %w", v.site, err)
		}
		sites[v.site] = site

		f, err := os.OpenFile(
			filepath.Join(i.dir, v.dir+".log"),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644,
		)
		if err != nil {
			return report, fmt.Errorf("failed to open diagnostic log for %s: %w", v.site, err)
		}
		files = append(files, f)
		diags[v.site] = zerolog.New(f).With().Timestamp().Str("vendor", v.site).Logger()
	}

	for _, day := range gameday.Range(startDay, endDay) {
		for _, v := range i.vendors {
			diag := diags[v.site]
			dayReport, err := i.runVendorDay(ctx, v, sites[v.site], day, diag)
			if err != nil {
				return report, fmt.Errorf("failed to ingest %s salaries for %s: %w", v.site, day, err)
			}
			report.Merge(dayReport)
		}
	}

	metrics.ImportDuration.WithLabelValues("salaries").Observe(time.Since(start).Seconds())
	report.Log()
	return report, nil
}

// runVendorDay ingests one vendor's sheet for one day inside one
// transaction. An absent sheet is a normal "no data yet" condition.
func (i *Salaries) runVendorDay(ctx context.Context, v vendor, site *models.Site, day gameday.Day, diag zerolog.Logger) (*Report, error) {
	report := &Report{Importer: "salaries"}

	path := filepath.Join(i.dir, v.dir, day.String()+".csv")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Debug().Str("vendor", v.site).Str("day", day.String()).Msg("No salary sheet for day")
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("failed to open salary sheet %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return report, fmt.Errorf("failed to parse salary sheet %s: %w", path, err)
	}
	if len(records) <= 1 {
		return report, nil
	}

	err = i.db.WithTx(ctx, func(tx *repository.Database) error {
		// Skip the header row
		for _, record := range records[1:] {
			row, err := v.parseRow(record)
			if err != nil {
				report.Failed++
				log.Warn().
					Err(err).
					Str("vendor", v.site).
					Str("day", day.String()).
					Msg("Unparseable salary row")
				continue
			}

			if err := i.ingestRow(ctx, tx, v, site, day, row, diag, report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	log.Info().
		Str("vendor", v.site).
		Str("day", day.String()).
		Int("resolved", report.Resolved).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Salary sheet ingested")

	return report, nil
}

// ingestRow normalizes, resolves, and upserts one salary row. A miss is
// written to the vendor's diagnostic log and the row is skipped.
func (i *Salaries) ingestRow(ctx context.Context, tx *repository.Database, v vendor, site *models.Site, day gameday.Day, row *salaryRow, diag zerolog.Logger, report *Report) error {
	firstName, lastName := normalize.PlayerName(v.source, row.firstName, row.lastName)
	homeAbbr := normalize.TeamAbbreviation(v.source, row.homeAbbr)
	awayAbbr := normalize.TeamAbbreviation(v.source, row.awayAbbr)
	teamAbbr := normalize.TeamAbbreviation(v.source, row.teamAbbr)

	windowStart, windowEnd := day.Window(i.loc)

	// A vendor that supplies a local start time is matched on the exact
	// localized instant instead of the full-day window
	var startInstant time.Time
	if row.startClock != "" {
		clock, parseErr := time.Parse("3:04PM", strings.ToUpper(row.startClock))
		if parseErr != nil {
			report.Failed++
			log.Warn().
				Err(parseErr).
				Str("vendor", v.site).
				Str("clock", row.startClock).
				Msg("Unparseable start time in salary row")
			return nil
		}
		startInstant = day.At(clock.Hour(), clock.Minute(), i.loc)
	}

	logMiss := func(miss *resolve.Miss) {
		report.Skipped++
		metrics.RecordsSkipped.WithLabelValues("salaries", string(miss.Reason)).Inc()
		event := diag.Warn().
			Str("first_name", firstName).
			Str("last_name", lastName).
			Str("team", teamAbbr)
		if row.startClock != "" {
			event = event.Time("start_time", startInstant)
		} else {
			event = event.
				Time("window_start", windowStart).
				Time("window_end", windowEnd)
		}
		event.
			Str("reason", string(miss.Reason)).
			Str("detail", miss.Detail).
			Msg("unresolved salary row")
	}

	team, miss, err := i.resolver.Team(ctx, teamAbbr)
	if err != nil {
		return err
	}
	if miss != nil {
		logMiss(miss)
		return nil
	}

	player, miss, err := i.resolver.Player(ctx, firstName, lastName, team.ID)
	if err != nil {
		return err
	}
	if miss != nil {
		logMiss(miss)
		return nil
	}

	home, miss, err := i.resolver.Team(ctx, homeAbbr)
	if err != nil {
		return err
	}
	if miss != nil {
		logMiss(miss)
		return nil
	}

	away, miss, err := i.resolver.Team(ctx, awayAbbr)
	if err != nil {
		return err
	}
	if miss != nil {
		logMiss(miss)
		return nil
	}

	var game *models.Game
	if row.startClock != "" {
		game, miss, err = i.resolver.GameAt(ctx, home, away, startInstant)
	} else {
		// Day-window vendor: match by team pair inside the sheet's
		// full local day
		game, miss, err = i.resolver.GameInWindow(ctx, home, away, windowStart, windowEnd)
	}
	if err != nil {
		return err
	}
	if miss != nil {
		logMiss(miss)
		return nil
	}

	if err := tx.Salaries.Upsert(ctx, &models.PlayerSalary{
		SiteID:   site.ID,
		PlayerID: player.ID,
		GameID:   game.ID,
		Salary:   row.salary,
	}); err != nil {
		return err
	}
	report.Resolved++
	metrics.RecordsResolved.WithLabelValues("salaries").Inc()
	return nil
}
