//go:build integration

package resolve

import (
	"context"
	"testing"
	"time"

	"nbadfs/ingestion/internal/models"
	"nbadfs/ingestion/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests; these need the same test database as the
// repository tests and run without a Redis cache.

func setupResolver(t *testing.T) (*Resolver, *repository.Database, context.Context) {
	ctx := context.Background()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     "localhost",
		Port:     "5432",
		Database: "nbadfs_test",
		User:     "nbadfs_user",
		Password: "nbadfs_password",
		SSLMode:  "disable",
	})
	require.NoError(t, err, "Failed to connect to test database")

	return New(db, nil), db, ctx
}

func TestResolver_Team(t *testing.T) {
	resolver, db, ctx := setupResolver(t)
	defer db.Close()

	team := &models.Team{Name: "Utah Jazz", Abbreviation: "UTA"}
	require.NoError(t, db.Teams.Upsert(ctx, team), "Should insert team")

	resolved, miss, err := resolver.Team(ctx, "UTA")
	require.NoError(t, err, "Lookup should not error")
	require.Nil(t, miss, "Known team should resolve")
	assert.Equal(t, team.ID, resolved.ID, "Should resolve to the inserted team")

	resolved, miss, err = resolver.Team(ctx, "QQQ")
	require.NoError(t, err, "An unknown team is a miss, not an error")
	require.NotNil(t, miss, "Unknown team should miss")
	assert.Nil(t, resolved, "Miss should carry no entity")
	assert.Equal(t, MissTeamNotFound, miss.Reason, "Miss should be classified")
	assert.Contains(t, miss.Detail, "QQQ", "Miss detail should name the abbreviation")
}

func TestResolver_Player(t *testing.T) {
	resolver, db, ctx := setupResolver(t)
	defer db.Close()

	team := &models.Team{Name: "Utah Jazz", Abbreviation: "UTA"}
	require.NoError(t, db.Teams.Upsert(ctx, team), "Should insert team")

	position := &models.Position{Name: "Shooting Guard", Abbreviation: "SG"}
	require.NoError(t, db.Positions.Upsert(ctx, position), "Should insert position")

	player := &models.Player{
		FirstName:  "Rodney",
		LastName:   "Hood",
		TeamID:     team.ID,
		PositionID: position.ID,
	}
	require.NoError(t, db.Players.Upsert(ctx, player), "Should insert player")

	resolved, miss, err := resolver.Player(ctx, "Rodney", "Hood", team.ID)
	require.NoError(t, err, "Lookup should not error")
	require.Nil(t, miss, "Known player should resolve")
	assert.Equal(t, player.ID, resolved.ID, "Should resolve to the inserted player")

	// Same name on a different team is a different player
	_, miss, err = resolver.Player(ctx, "Rodney", "Hood", team.ID+9999)
	require.NoError(t, err, "An unknown player is a miss, not an error")
	require.NotNil(t, miss, "Player on the wrong team should miss")
	assert.Equal(t, MissPlayerNotFound, miss.Reason, "Miss should be classified")
}

func TestResolver_GameInWindow(t *testing.T) {
	resolver, db, ctx := setupResolver(t)
	defer db.Close()

	home := &models.Team{Name: "Memphis Grizzlies", Abbreviation: "MEM"}
	require.NoError(t, db.Teams.Upsert(ctx, home), "Should insert home team")
	away := &models.Team{Name: "Dallas Mavericks", Abbreviation: "DAL"}
	require.NoError(t, db.Teams.Upsert(ctx, away), "Should insert away team")

	season, err := db.Seasons.GetOrCreate(ctx, 2016)
	require.NoError(t, err, "Should get or create season")

	start := time.Date(2016, 11, 19, 1, 0, 0, 0, time.UTC)
	game := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  start,
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert game")

	windowStart := start.Add(-6 * time.Hour)

	// Single match resolves regardless of pair order
	resolved, miss, err := resolver.GameInWindow(ctx, away, home, windowStart, start.Add(6*time.Hour))
	require.NoError(t, err, "Lookup should not error")
	require.Nil(t, miss, "Single game in window should resolve")
	assert.Equal(t, game.ID, resolved.ID, "Should resolve to the inserted game")

	// Empty window is a miss
	_, miss, err = resolver.GameInWindow(ctx, home, away, start.Add(48*time.Hour), start.Add(72*time.Hour))
	require.NoError(t, err, "An empty window is a miss, not an error")
	require.NotNil(t, miss, "Empty window should miss")
	assert.Equal(t, MissGameNotFound, miss.Reason, "Miss should be classified")

	// A second matchup in the window makes resolution ambiguous
	rematch := &models.Game{
		HomeTeamID: away.ID,
		AwayTeamID: home.ID,
		StartTime:  start.Add(12 * time.Hour),
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, rematch), "Should insert second game")

	_, miss, err = resolver.GameInWindow(ctx, home, away, windowStart, start.Add(18*time.Hour))
	require.NoError(t, err, "Ambiguity is a miss, not an error")
	require.NotNil(t, miss, "Two games in window should miss")
	assert.Equal(t, MissGameAmbiguous, miss.Reason, "Ambiguity should never resolve arbitrarily")
}

func TestResolver_GameAt(t *testing.T) {
	resolver, db, ctx := setupResolver(t)
	defer db.Close()

	home := &models.Team{Name: "Orlando Magic", Abbreviation: "ORL"}
	require.NoError(t, db.Teams.Upsert(ctx, home), "Should insert home team")
	away := &models.Team{Name: "Miami Heat", Abbreviation: "MIA"}
	require.NoError(t, db.Teams.Upsert(ctx, away), "Should insert away team")

	season, err := db.Seasons.GetOrCreate(ctx, 2016)
	require.NoError(t, err, "Should get or create season")

	start := time.Date(2017, 2, 4, 0, 0, 0, 0, time.UTC)
	game := &models.Game{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		StartTime:  start,
		SeasonID:   season.ID,
	}
	require.NoError(t, db.Games.Upsert(ctx, game), "Should insert game")

	resolved, miss, err := resolver.GameAt(ctx, home, away, start)
	require.NoError(t, err, "Lookup should not error")
	require.Nil(t, miss, "Exact matchup should resolve")
	assert.Equal(t, game.ID, resolved.ID, "Should resolve to the inserted game")

	_, miss, err = resolver.GameAt(ctx, home, away, start.Add(time.Hour))
	require.NoError(t, err, "A wrong instant is a miss, not an error")
	require.NotNil(t, miss, "Wrong start instant should miss")
	assert.Equal(t, MissGameNotFound, miss.Reason, "Miss should be classified")
}
