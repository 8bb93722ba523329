package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/squad"
)

type SquadRepository struct {
	mu     sync.RWMutex
	items  map[int64]squad.Squad
	nextID int64
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{items: make(map[int64]squad.Squad)}
}

func (r *SquadRepository) Replace(_ context.Context, teamID int64, rawJSON string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	r.nextID++
	r.items[teamID] = squad.Squad{
		ID:        r.nextID,
		TeamID:    teamID,
		RawJSON:   rawJSON,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *SquadRepository) GetByTeamID(_ context.Context, teamID int64) (squad.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	return item, ok, nil
}

func (r *SquadRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.items)), nil
}
