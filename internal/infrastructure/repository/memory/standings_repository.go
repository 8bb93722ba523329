package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/standings"
)

type standingsKey struct {
	leagueID int64
	season   int
}

type StandingsRepository struct {
	mu     sync.RWMutex
	items  map[standingsKey]standings.Standings
	nextID int64
}

func NewStandingsRepository() *StandingsRepository {
	return &StandingsRepository{items: make(map[standingsKey]standings.Standings)}
}

func (r *StandingsRepository) Replace(_ context.Context, leagueID int64, season int, rawJSON string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	r.nextID++
	r.items[standingsKey{leagueID: leagueID, season: season}] = standings.Standings{
		ID:        r.nextID,
		LeagueID:  leagueID,
		Season:    season,
		RawJSON:   rawJSON,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *StandingsRepository) Get(_ context.Context, leagueID int64, season int) (standings.Standings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[standingsKey{leagueID: leagueID, season: season}]
	return item, ok, nil
}

func (r *StandingsRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.items)), nil
}
