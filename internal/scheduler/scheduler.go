package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nbadfs/ingestion/internal/config"
	"nbadfs/ingestion/internal/gameday"
	"nbadfs/ingestion/internal/importer"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs the nightly ingestion cycle: schedule refresh, roster
// refresh, then box scores and salaries over their lookback windows.
// Runs never overlap; a cycle still in flight when the next trigger
// fires causes that trigger to be skipped.
type Scheduler struct {
	cfg       *config.Config
	schedule  *importer.Schedule
	rosters   *importer.Rosters
	boxScores *importer.BoxScores
	salaries  *importer.Salaries
	cron      *cron.Cron

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, schedule *importer.Schedule, rosters *importer.Rosters, boxScores *importer.BoxScores, salaries *importer.Salaries) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		schedule:  schedule,
		rosters:   rosters,
		boxScores: boxScores,
		salaries:  salaries,
		cron:      cron.New(),
	}
}

// Start registers the nightly cron job and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlyIngestCron, func() {
		if err := s.RunIngestCycle(ctx); err != nil {
			log.Error().Err(err).Msg("Nightly ingest failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly ingest: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.NightlyIngestCron).
		Msg("Nightly ingest scheduled")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	if s.cron != nil {
		s.cron.Stop()
	}
	log.Info().Msg("Scheduler stopped")
}

// RunIngestCycle runs one full ingestion pass. Safe to call from the
// cron trigger and from the initial sync path; concurrent calls beyond
// the first are dropped.
func (s *Scheduler) RunIngestCycle(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Warn().Msg("Ingest cycle already running, skipping trigger")
		return nil
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	log.Info().Msg("Running ingest cycle...")

	year := s.cfg.SeasonStartYear
	if _, err := s.schedule.Run(ctx, year, year); err != nil {
		return fmt.Errorf("schedule refresh failed: %w", err)
	}

	if _, err := s.rosters.Run(ctx, year); err != nil {
		return fmt.Errorf("roster refresh failed: %w", err)
	}

	loc := s.cfg.Location()
	now := time.Now()
	today := gameday.Of(now, loc)

	boxMin, _ := today.AddDays(-s.cfg.BoxScoreLookback).Window(loc)
	if _, err := s.boxScores.Run(ctx, boxMin, now); err != nil {
		return fmt.Errorf("box score import failed: %w", err)
	}

	salaryMin := today.AddDays(-s.cfg.SalaryLookback)
	if _, err := s.salaries.Run(ctx, salaryMin, today); err != nil {
		return fmt.Errorf("salary import failed: %w", err)
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Msg("Ingest cycle complete")

	return nil
}
