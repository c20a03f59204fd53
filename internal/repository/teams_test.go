//go:build integration

package repository

import (
	"errors"
	"testing"

	"nbadfs/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_Upsert(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	team := &models.Team{
		Name:         "Boston Celtics",
		Abbreviation: "BOS",
	}

	// Insert new team
	err := db.Teams.Upsert(ctx, team)
	require.NoError(t, err, "Should successfully insert team")
	assert.NotZero(t, team.ID, "Upsert should populate the database ID")

	// Upsert again with identical data
	again := &models.Team{Name: "Boston Celtics", Abbreviation: "BOS"}
	err = db.Teams.Upsert(ctx, again)
	require.NoError(t, err, "Repeated upsert should succeed")
	assert.Equal(t, team.ID, again.ID, "Repeated upsert should hit the same row")

	count, err := db.Teams.Count(ctx)
	require.NoError(t, err, "Should count teams")
	assert.GreaterOrEqual(t, count, 1, "Should have at least the inserted team")
}

func TestTeamRepository_GetByAbbreviation(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	team := &models.Team{
		Name:         "Golden State Warriors",
		Abbreviation: "GSW",
	}

	err := db.Teams.Upsert(ctx, team)
	require.NoError(t, err, "Should insert team")

	retrieved, err := db.Teams.GetByAbbreviation(ctx, "GSW")
	require.NoError(t, err, "Should retrieve team by abbreviation")
	assert.Equal(t, team.ID, retrieved.ID, "Team IDs should match")
	assert.Equal(t, "Golden State Warriors", retrieved.Name, "Team names should match")
}

func TestTeamRepository_GetByName(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	team := &models.Team{
		Name:         "San Antonio Spurs",
		Abbreviation: "SAS",
	}

	err := db.Teams.Upsert(ctx, team)
	require.NoError(t, err, "Should insert team")

	retrieved, err := db.Teams.GetByName(ctx, "San Antonio Spurs")
	require.NoError(t, err, "Should retrieve team by full name")
	assert.Equal(t, "SAS", retrieved.Abbreviation, "Abbreviations should match")
}

func TestTeamRepository_GetNotFound(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Teams.GetByAbbreviation(ctx, "NOPE")
	require.Error(t, err, "Should return error for non-existent team")
	assert.True(t, errors.Is(err, ErrNotFound), "Missing rows should map to ErrNotFound")
}
