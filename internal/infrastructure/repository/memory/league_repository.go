package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[int64]league.League
	nextID int64
}

func NewLeagueRepository(seed ...league.League) *LeagueRepository {
	r := &LeagueRepository{items: make(map[int64]league.League, len(seed))}
	for _, item := range seed {
		_, _ = r.Insert(context.Background(), item)
	}
	return r
}

func (r *LeagueRepository) ExistsByAPIID(_ context.Context, apiID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[apiID]
	return ok, nil
}

func (r *LeagueRepository) Insert(_ context.Context, item league.League) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.APIID]; ok {
		return false, nil
	}
	r.nextID++
	item.ID = r.nextID
	stamp(&item.CreatedAt, &item.UpdatedAt, time.Now().UTC())
	r.items[item.APIID] = item
	return true, nil
}

func (r *LeagueRepository) GetByAPIID(_ context.Context, apiID int64) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[apiID]
	return item, ok, nil
}

func (r *LeagueRepository) ListAll(_ context.Context) ([]league.League, error) {
	return r.filter(func(league.League) bool { return true }), nil
}

func (r *LeagueRepository) ListByCountry(_ context.Context, country string) ([]league.League, error) {
	return r.filter(func(item league.League) bool {
		return strings.EqualFold(item.CountryName, country)
	}), nil
}

func (r *LeagueRepository) SearchByName(_ context.Context, query string) ([]league.League, error) {
	return r.filter(func(item league.League) bool {
		return containsFold(item.Name, query)
	}), nil
}

func (r *LeagueRepository) SearchByNameOrCountry(_ context.Context, query string) ([]league.League, error) {
	return r.filter(func(item league.League) bool {
		return containsFold(item.Name, query) || containsFold(item.CountryName, query)
	}), nil
}

func (r *LeagueRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.items)), nil
}

// filter returns matches ordered by name, then api id.
func (r *LeagueRepository) filter(match func(league.League) bool) []league.League {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].APIID < out[j].APIID
	})
	return out
}
