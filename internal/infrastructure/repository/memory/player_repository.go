package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  []player.Player
	nextID int64
}

func NewPlayerRepository(seed ...player.Player) *PlayerRepository {
	r := &PlayerRepository{}
	for _, item := range seed {
		_ = r.Insert(context.Background(), item)
	}
	return r
}

func (r *PlayerRepository) ExistsByAPIID(ctx context.Context, apiID int64) (bool, error) {
	_, ok, err := r.GetFirstByAPIID(ctx, apiID)
	return ok, err
}

// Insert ignores a second row for the same (api id, season).
func (r *PlayerRepository) Insert(_ context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.APIID == item.APIID && existing.Season == item.Season {
			return nil
		}
	}
	r.nextID++
	item.ID = r.nextID
	if item.SearchKey == "" {
		item.SearchKey = player.SearchKeyFor(item.Name)
	}
	stamp(&item.CreatedAt, &item.UpdatedAt, time.Now().UTC())
	r.items = append(r.items, item)
	return nil
}

func (r *PlayerRepository) GetByAPIIDAndSeason(_ context.Context, apiID int64, season int) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.APIID == apiID && item.Season == season {
			return item, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) GetFirstByAPIID(_ context.Context, apiID int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.APIID == apiID {
			return item, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) ListByTeamSeason(_ context.Context, teamID int64, season int) ([]player.Player, error) {
	out := r.filter(func(item player.Player) bool {
		return item.TeamID != nil && *item.TeamID == teamID && item.Season == season
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PlayerRepository) SearchByName(_ context.Context, name string) ([]player.Player, error) {
	return r.filter(func(item player.Player) bool {
		return containsFold(item.Name, name)
	}), nil
}

func (r *PlayerRepository) SearchByNameLeagueSeason(_ context.Context, name string, leagueID int64, season int) ([]player.Player, error) {
	return r.filter(func(item player.Player) bool {
		return containsFold(item.Name, name) &&
			item.LeagueID != nil && *item.LeagueID == leagueID &&
			item.Season == season
	}), nil
}

func (r *PlayerRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.items)), nil
}

func (r *PlayerRepository) filter(match func(player.Player) bool) []player.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}
