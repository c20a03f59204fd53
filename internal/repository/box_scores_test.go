//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"nbadfs/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPlayerAndGame(t *testing.T, db *Database, ctx context.Context) (*models.Player, *models.Game) {
	home, away, season := seedMatchup(t, db, ctx)

	position := &models.Position{Name: "Point Guard", Abbreviation: "PG"}
	require.NoError(t, db.Positions.Upsert(ctx, position), "Should insert position")

	player := &models.Player{
		FirstName:  "Kyrie",
		LastName:   "Irving",
		TeamID:     home.ID,
		PositionID: position.ID,
	}
	require.NoError(t, db.Players.Upsert(ctx, player), "Should insert player")

	game := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  time.Date(2017, 4, 10, 0, 0, 0, 0, time.UTC),
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert game")

	return player, game
}

func TestBoxScoreRepository_UpsertOverwrites(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	player, game := seedPlayerAndGame(t, db, ctx)

	box := &models.BoxScore{
		PlayerID:      player.ID,
		GameID:        game.ID,
		Points:        20,
		TotalRebounds: 4,
		Assists:       6,
	}
	box.ComputeFantasyPoints()
	require.NoError(t, db.BoxScores.Upsert(ctx, box), "Should insert box score")

	// A corrected stat line for the same (player, game) replaces the row
	corrected := &models.BoxScore{
		PlayerID:      player.ID,
		GameID:        game.ID,
		Points:        25,
		TotalRebounds: 4,
		Assists:       6,
		Turnovers:     2,
	}
	corrected.ComputeFantasyPoints()
	require.NoError(t, db.BoxScores.Upsert(ctx, corrected), "Repeated upsert should succeed")
	assert.Equal(t, box.ID, corrected.ID, "Corrections should hit the same row")

	retrieved, err := db.BoxScores.GetByPlayerAndGame(ctx, player.ID, game.ID)
	require.NoError(t, err, "Should retrieve box score")
	assert.Equal(t, 25, retrieved.Points, "Corrected points should be stored")
	assert.Equal(t, corrected.FantasyPoints, retrieved.FantasyPoints, "Stored derived value should match corrected stats")
}

func TestSalaryRepository_UpsertIdempotent(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	player, game := seedPlayerAndGame(t, db, ctx)

	site := &models.Site{Name: "DraftKings"}
	require.NoError(t, db.Sites.Upsert(ctx, site), "Should insert site")

	salary := &models.PlayerSalary{
		SiteID:   site.ID,
		PlayerID: player.ID,
		GameID:   game.ID,
		Salary:   8300,
	}
	require.NoError(t, db.Salaries.Upsert(ctx, salary), "Should insert salary")

	// A revised sheet updates the price in place
	revised := &models.PlayerSalary{
		SiteID:   site.ID,
		PlayerID: player.ID,
		GameID:   game.ID,
		Salary:   8500,
	}
	require.NoError(t, db.Salaries.Upsert(ctx, revised), "Repeated upsert should succeed")
	assert.Equal(t, salary.ID, revised.ID, "Revisions should hit the same row")

	retrieved, err := db.Salaries.GetByNaturalKey(ctx, site.ID, player.ID, game.ID)
	require.NoError(t, err, "Should retrieve salary")
	assert.Equal(t, 8500, retrieved.Salary, "Revised price should be stored")
}
