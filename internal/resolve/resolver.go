// Package resolve maps normalized vendor records onto canonical Team,
// Player, and Game rows.
//
// A failed lookup is a Miss, a typed result distinct from error: misses
// are expected in real data (late call-ups, vendor misspellings) and
// every importer must handle them by skipping the record, while an
// error means the lookup itself could not be performed (database down)
// and aborts the batch. Nothing here ever creates placeholder entities.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nbadfs/ingestion/internal/cache"
	"nbadfs/ingestion/internal/models"
	"nbadfs/ingestion/internal/repository"
)

// MissReason classifies why resolution failed
type MissReason string

const (
	MissTeamNotFound   MissReason = "team_not_found"
	MissPlayerNotFound MissReason = "player_not_found"
	MissGameNotFound   MissReason = "game_not_found"
	MissGameAmbiguous  MissReason = "game_ambiguous"
)

// Miss is the typed result of a resolution that matched no canonical
// entity (or, for games, more than one)
type Miss struct {
	Reason MissReason
	Detail string
}

func (m *Miss) String() string {
	return fmt.Sprintf("%s: %s", m.Reason, m.Detail)
}

// Resolver looks up canonical entities by their natural keys, with an
// optional Redis cache in front of team and player lookups
type Resolver struct {
	db    *repository.Database
	cache *cache.Cache
}

// New creates a Resolver. cache may be nil.
func New(db *repository.Database, c *cache.Cache) *Resolver {
	return &Resolver{db: db, cache: c}
}

// Team resolves a canonical team abbreviation
func (r *Resolver) Team(ctx context.Context, abbreviation string) (*models.Team, *Miss, error) {
	key := "resolve:team:" + abbreviation
	if id, ok := r.cache.GetID(ctx, key); ok {
		return &models.Team{ID: id, Abbreviation: abbreviation}, nil, nil
	}

	team, err := r.db.Teams.GetByAbbreviation(ctx, abbreviation)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Miss{
			Reason: MissTeamNotFound,
			Detail: fmt.Sprintf("abbreviation=%s", abbreviation),
		}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	r.cache.SetID(ctx, key, team.ID)
	return team, nil, nil
}

// TeamByName resolves a canonical team by full franchise name. Used by
// schedule ingestion, whose source carries names rather than
// abbreviations.
func (r *Resolver) TeamByName(ctx context.Context, name string) (*models.Team, *Miss, error) {
	team, err := r.db.Teams.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Miss{
			Reason: MissTeamNotFound,
			Detail: fmt.Sprintf("name=%s", name),
		}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return team, nil, nil
}

// Player resolves a player by exact first name, last name, and team
func (r *Resolver) Player(ctx context.Context, firstName, lastName string, teamID int) (*models.Player, *Miss, error) {
	key := fmt.Sprintf("resolve:player:%s:%s:%d", firstName, lastName, teamID)
	if id, ok := r.cache.GetID(ctx, key); ok {
		return &models.Player{ID: id, FirstName: firstName, LastName: lastName, TeamID: teamID}, nil, nil
	}

	player, err := r.db.Players.GetByNameAndTeam(ctx, firstName, lastName, teamID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Miss{
			Reason: MissPlayerNotFound,
			Detail: fmt.Sprintf("name=%s %s team_id=%d", firstName, lastName, teamID),
		}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	r.cache.SetID(ctx, key, player.ID)
	return player, nil, nil
}

// GameInWindow resolves the single game between two teams, in either
// home/away order, starting inside the half-open UTC window
// [start, end). Zero matches and multiple matches are both a Miss:
// ambiguity is a data-integrity signal and never resolved by an
// arbitrary pick.
func (r *Resolver) GameInWindow(ctx context.Context, teamA, teamB *models.Team, start, end time.Time) (*models.Game, *Miss, error) {
	games, err := r.db.Games.ListByPairInWindow(ctx, teamA.ID, teamB.ID, start, end)
	if err != nil {
		return nil, nil, err
	}

	switch len(games) {
	case 1:
		return games[0], nil, nil
	case 0:
		return nil, &Miss{
			Reason: MissGameNotFound,
			Detail: fmt.Sprintf("teams=%s/%s window=[%s, %s)",
				teamA.Abbreviation, teamB.Abbreviation,
				start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)),
		}, nil
	default:
		return nil, &Miss{
			Reason: MissGameAmbiguous,
			Detail: fmt.Sprintf("teams=%s/%s window=[%s, %s) matches=%d",
				teamA.Abbreviation, teamB.Abbreviation,
				start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339), len(games)),
		}, nil
	}
}

// GameAt resolves a game by exact home team, away team, and UTC start
// instant. Used for vendor rows that carry a full local start time.
func (r *Resolver) GameAt(ctx context.Context, home, away *models.Team, start time.Time) (*models.Game, *Miss, error) {
	game, err := r.db.Games.GetByMatchupAt(ctx, home.ID, away.ID, start)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Miss{
			Reason: MissGameNotFound,
			Detail: fmt.Sprintf("home=%s away=%s start=%s",
				home.Abbreviation, away.Abbreviation, start.UTC().Format(time.RFC3339)),
		}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return game, nil, nil
}
