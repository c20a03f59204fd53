//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"nbadfs/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMatchup(t *testing.T, db *Database, ctx context.Context) (home, away *models.Team, season *models.Season) {
	home = &models.Team{Name: "Cleveland Cavaliers", Abbreviation: "CLE"}
	require.NoError(t, db.Teams.Upsert(ctx, home), "Should insert home team")

	away = &models.Team{Name: "Indiana Pacers", Abbreviation: "IND"}
	require.NoError(t, db.Teams.Upsert(ctx, away), "Should insert away team")

	var err error
	season, err = db.Seasons.GetOrCreate(ctx, 2016)
	require.NoError(t, err, "Should get or create season")

	return home, away, season
}

func TestGameRepository_UpsertIdempotent(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	home, away, season := seedMatchup(t, db, ctx)
	start := time.Date(2017, 4, 2, 17, 30, 0, 0, time.UTC)

	game := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  start,
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert game")
	require.NotZero(t, game.ID, "Upsert should populate the database ID")

	// Re-upserting the same natural key must not create a second row
	dup := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  start,
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, dup), "Repeated upsert should succeed")
	assert.Equal(t, game.ID, dup.ID, "Repeated upsert should hit the same row")
}

func TestGameRepository_ListByPairInWindow(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	home, away, season := seedMatchup(t, db, ctx)
	start := time.Date(2017, 1, 8, 0, 30, 0, 0, time.UTC)

	game := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  start,
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert game")

	windowStart := time.Date(2017, 1, 7, 5, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2017, 1, 8, 5, 0, 0, 0, time.UTC)

	games, err := db.Games.ListByPairInWindow(ctx, home.ID, away.ID, windowStart, windowEnd)
	require.NoError(t, err, "Should list games in window")
	require.Len(t, games, 1, "Window should contain the game")
	assert.Equal(t, game.ID, games[0].ID, "Should find the inserted game")

	// Pair order must not matter
	flipped, err := db.Games.ListByPairInWindow(ctx, away.ID, home.ID, windowStart, windowEnd)
	require.NoError(t, err, "Should list games with flipped pair")
	require.Len(t, flipped, 1, "Flipped pair should find the same game")
	assert.Equal(t, game.ID, flipped[0].ID, "Pair matching should be symmetric")

	// Window end is exclusive
	atBoundary, err := db.Games.ListByPairInWindow(ctx, home.ID, away.ID, windowStart, start)
	require.NoError(t, err, "Should list games up to the boundary")
	assert.Empty(t, atBoundary, "A game starting at the window end should be excluded")
}

func TestGameRepository_GetByMatchupAt(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	home, away, season := seedMatchup(t, db, ctx)
	start := time.Date(2017, 2, 16, 0, 0, 0, 0, time.UTC)

	game := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  start,
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert game")

	retrieved, err := db.Games.GetByMatchupAt(ctx, home.ID, away.ID, start)
	require.NoError(t, err, "Should retrieve game by exact matchup and start")
	assert.Equal(t, game.ID, retrieved.ID, "Game IDs should match")

	// Exact matching: home/away order matters here
	_, err = db.Games.GetByMatchupAt(ctx, away.ID, home.ID, start)
	require.Error(t, err, "Flipped matchup should not match")
	assert.True(t, errors.Is(err, ErrNotFound), "Missing game should map to ErrNotFound")

	_, err = db.Games.GetByMatchupAt(ctx, home.ID, away.ID, start.Add(time.Hour))
	require.Error(t, err, "Different start instant should not match")
	assert.True(t, errors.Is(err, ErrNotFound), "Missing game should map to ErrNotFound")
}

func TestGameRepository_List_Filtered(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	home, away, season := seedMatchup(t, db, ctx)
	start := time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC)

	game := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  start,
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert game")

	homeAbbr := "CLE"
	after := start.Add(-time.Hour)
	before := start.Add(time.Hour)

	games, err := db.Games.List(ctx, GameFilter{
		HomeTeamAbbreviation: &homeAbbr,
		StartAfter:           &after,
		StartBefore:          &before,
	})
	require.NoError(t, err, "Should list games with filter")
	require.NotEmpty(t, games, "Filter should match the inserted game")

	for _, g := range games {
		assert.Equal(t, home.ID, g.HomeTeamID, "All results should have the filtered home team")
	}
}

func TestGameRepository_ListMissingBoxScores(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	home, away, season := seedMatchup(t, db, ctx)

	position := &models.Position{Name: "Point Guard", Abbreviation: "PG"}
	require.NoError(t, db.Positions.Upsert(ctx, position), "Should insert position")

	player := &models.Player{
		FirstName:  "Kevin",
		LastName:   "Love",
		TeamID:     home.ID,
		PositionID: position.ID,
	}
	require.NoError(t, db.Players.Upsert(ctx, player), "Should insert player")

	ingested := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  time.Date(2017, 3, 20, 0, 0, 0, 0, time.UTC),
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, ingested), "Should insert ingested game")

	pending := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  time.Date(2017, 3, 20, 2, 0, 0, 0, time.UTC),
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, pending), "Should insert pending game")

	// Reset box-score state for these games so the test is deterministic
	// across runs against a persistent database
	_, err := db.Pool.Exec(ctx, `DELETE FROM box_scores WHERE game_id IN ($1, $2)`, ingested.ID, pending.ID)
	require.NoError(t, err, "Should clear box scores for seeded games")

	box := &models.BoxScore{
		PlayerID: player.ID,
		GameID:   ingested.ID,
		Points:   23,
	}
	box.ComputeFantasyPoints()
	require.NoError(t, db.BoxScores.Upsert(ctx, box), "Should insert box score")

	min := time.Date(2017, 3, 19, 12, 0, 0, 0, time.UTC)
	max := time.Date(2017, 3, 20, 12, 0, 0, 0, time.UTC)

	missing, err := db.Games.ListMissingBoxScores(ctx, min, max)
	require.NoError(t, err, "Should list games missing box scores")

	ids := make([]int, 0, len(missing))
	for _, g := range missing {
		ids = append(ids, g.ID)
	}
	assert.Contains(t, ids, pending.ID, "Game without box scores should be reported missing")
	assert.NotContains(t, ids, ingested.ID, "Game with a box score should not be reported missing")

	// Once the pending game is ingested too, the range reports nothing
	// left to fetch
	box2 := &models.BoxScore{
		PlayerID: player.ID,
		GameID:   pending.ID,
		Points:   17,
	}
	box2.ComputeFantasyPoints()
	require.NoError(t, db.BoxScores.Upsert(ctx, box2), "Should insert second box score")

	missing, err = db.Games.ListMissingBoxScores(ctx, min, max)
	require.NoError(t, err, "Should list games missing box scores after full ingestion")
	assert.Empty(t, missing, "A fully ingested range should report no missing games")
}
