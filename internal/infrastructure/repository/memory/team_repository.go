package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/team"
)

// TeamRepository keeps rows in insertion order, which doubles as id order.
type TeamRepository struct {
	mu     sync.RWMutex
	items  []team.Team
	nextID int64
}

func NewTeamRepository(seed ...team.Team) *TeamRepository {
	r := &TeamRepository{}
	for _, item := range seed {
		_ = r.Insert(context.Background(), item)
	}
	return r
}

func (r *TeamRepository) FindByAPIIDLeagueSeason(_ context.Context, apiID, leagueID int64, season int) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.APIID == apiID && matchLeagueSeason(item.LeagueID, item.Season, leagueID, season) {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) Insert(_ context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	stamp(&item.CreatedAt, &item.UpdatedAt, time.Now().UTC())
	r.items = append(r.items, item)
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != item.ID {
			continue
		}
		item.CreatedAt = r.items[i].CreatedAt
		item.UpdatedAt = time.Now().UTC()
		r.items[i] = item
		return nil
	}
	return fmt.Errorf("team row id=%d not found", item.ID)
}

func (r *TeamRepository) ExistsByAPIID(ctx context.Context, apiID int64) (bool, error) {
	_, ok, err := r.GetFirstByAPIID(ctx, apiID)
	return ok, err
}

func (r *TeamRepository) GetFirstByAPIID(_ context.Context, apiID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.APIID == apiID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) ListByLeagueSeason(_ context.Context, leagueID int64, season int) ([]team.Team, error) {
	out := r.filter(func(item team.Team) bool {
		return matchLeagueSeason(item.LeagueID, item.Season, leagueID, season)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TeamRepository) SearchByName(_ context.Context, name string) ([]team.Team, error) {
	return r.filter(func(item team.Team) bool {
		return containsFold(item.Name, name)
	}), nil
}

func (r *TeamRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.items)), nil
}

func (r *TeamRepository) filter(match func(team.Team) bool) []team.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

func matchLeagueSeason(rowLeague *int64, rowSeason *int, leagueID int64, season int) bool {
	return rowLeague != nil && rowSeason != nil && *rowLeague == leagueID && *rowSeason == season
}
