package importer

import (
	"context"
	"fmt"

	"nbadfs/ingestion/internal/models"
	"nbadfs/ingestion/internal/repository"

	"github.com/rs/zerolog/log"
)

// Reference-data bootstrap. These seeds run before any schedule, box
// score, or salary ingestion: games and players can only resolve
// against teams, positions, and sites that already exist. A malformed
// seed record is a configuration error and aborts the call immediately.

// SeedPositions upserts the canonical positions
func SeedPositions(ctx context.Context, db *repository.Database, positions []models.PositionInput) error {
	for _, input := range positions {
		if input.Name == "" || input.Abbreviation == "" {
			return fmt.Errorf("position must have both name and abbreviation: %+v", input)
		}

		if err := db.Positions.Upsert(ctx, input.ToPosition()); err != nil {
			return fmt.Errorf("failed to seed position %s: %w", input.Abbreviation, err)
		}
	}

	log.Info().Int("count", len(positions)).Msg("Positions seeded")
	return nil
}

// SeedTeams upserts the canonical teams
func SeedTeams(ctx context.Context, db *repository.Database, teams []models.TeamInput) error {
	for _, input := range teams {
		if input.Name == "" || input.Abbreviation == "" {
			return fmt.Errorf("team must have both name and abbreviation: %+v", input)
		}

		if err := db.Teams.Upsert(ctx, input.ToTeam()); err != nil {
			return fmt.Errorf("failed to seed team %s: %w", input.Abbreviation, err)
		}
	}

	log.Info().Int("count", len(teams)).Msg("Teams seeded")
	return nil
}

// SeedSites upserts the daily fantasy sports sites
func SeedSites(ctx context.Context, db *repository.Database, names []string) error {
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("site must have a name")
		}

		if err := db.Sites.Upsert(ctx, &models.Site{Name: name}); err != nil {
			return fmt.Errorf("failed to seed site %s: %w", name, err)
		}
	}

	log.Info().Int("count", len(names)).Msg("DFS sites seeded")
	return nil
}

// SeedReferenceData seeds positions, teams, and sites from the built-in
// canonical lists
func SeedReferenceData(ctx context.Context, db *repository.Database) error {
	if err := SeedPositions(ctx, db, CanonicalPositions); err != nil {
		return err
	}
	if err := SeedTeams(ctx, db, CanonicalTeams); err != nil {
		return err
	}
	return SeedSites(ctx, db, CanonicalSites)
}
