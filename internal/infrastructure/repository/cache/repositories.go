package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-cache/internal/domain/league"
	"github.com/riskibarqy/football-cache/internal/domain/player"
	"github.com/riskibarqy/football-cache/internal/domain/squad"
	"github.com/riskibarqy/football-cache/internal/domain/standings"
	"github.com/riskibarqy/football-cache/internal/domain/team"
	basecache "github.com/riskibarqy/football-cache/internal/platform/cache"
)

const (
	leaguePrefix = "league:"
	teamPrefix   = "team:"
	playerPrefix = "player:"
)

// lookup is a cached single-row read. Misses are cached until the next write.
type lookup[T any] struct {
	value  T
	exists bool
}

func loadList[T any](ctx context.Context, store *basecache.Store, key string, next func(context.Context) ([]T, error)) ([]T, error) {
	items, err := basecache.Load(ctx, store, key, func(ctx context.Context) ([]T, error) {
		items, err := next(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

func loadOne[T any](ctx context.Context, store *basecache.Store, key string, next func(context.Context) (T, bool, error)) (T, bool, error) {
	cached, err := basecache.Load(ctx, store, key, func(ctx context.Context) (lookup[T], error) {
		item, exists, err := next(ctx)
		if err != nil {
			return lookup[T]{}, err
		}
		return lookup[T]{value: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return cached.value, cached.exists, nil
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, ":", `\:`)

// key joins parts with ':'. String parts are lower-cased and have ':' escaped
// so a search term can never forge the key of another lookup.
func key(parts ...any) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte(':')
		}
		switch v := part.(type) {
		case string:
			b.WriteString(keyEscaper.Replace(strings.ToLower(strings.TrimSpace(v))))
		case int:
			b.WriteString(strconv.Itoa(v))
		case int64:
			b.WriteString(strconv.FormatInt(v, 10))
		}
	}
	return b.String()
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) ExistsByAPIID(ctx context.Context, apiID int64) (bool, error) {
	return r.next.ExistsByAPIID(ctx, apiID)
}

func (r *LeagueRepository) Insert(ctx context.Context, item league.League) (bool, error) {
	inserted, err := r.next.Insert(ctx, item)
	if err != nil {
		return false, err
	}
	if inserted {
		r.cache.DeletePrefix(ctx, leaguePrefix)
	}
	return inserted, nil
}

func (r *LeagueRepository) GetByAPIID(ctx context.Context, apiID int64) (league.League, bool, error) {
	return loadOne(ctx, r.cache, key("league", "id", apiID), func(ctx context.Context) (league.League, bool, error) {
		return r.next.GetByAPIID(ctx, apiID)
	})
}

func (r *LeagueRepository) ListAll(ctx context.Context) ([]league.League, error) {
	return loadList(ctx, r.cache, key("league", "list"), r.next.ListAll)
}

func (r *LeagueRepository) ListByCountry(ctx context.Context, country string) ([]league.League, error) {
	return loadList(ctx, r.cache, key("league", "country", country), func(ctx context.Context) ([]league.League, error) {
		return r.next.ListByCountry(ctx, country)
	})
}

func (r *LeagueRepository) SearchByName(ctx context.Context, query string) ([]league.League, error) {
	return loadList(ctx, r.cache, key("league", "name", query), func(ctx context.Context) ([]league.League, error) {
		return r.next.SearchByName(ctx, query)
	})
}

func (r *LeagueRepository) SearchByNameOrCountry(ctx context.Context, query string) ([]league.League, error) {
	return loadList(ctx, r.cache, key("league", "search", query), func(ctx context.Context) ([]league.League, error) {
		return r.next.SearchByNameOrCountry(ctx, query)
	})
}

func (r *LeagueRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) FindByAPIIDLeagueSeason(ctx context.Context, apiID, leagueID int64, season int) (team.Team, bool, error) {
	return r.next.FindByAPIIDLeagueSeason(ctx, apiID, leagueID, season)
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return nil
}

func (r *TeamRepository) ExistsByAPIID(ctx context.Context, apiID int64) (bool, error) {
	return r.next.ExistsByAPIID(ctx, apiID)
}

func (r *TeamRepository) GetFirstByAPIID(ctx context.Context, apiID int64) (team.Team, bool, error) {
	return loadOne(ctx, r.cache, key("team", "id", apiID), func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetFirstByAPIID(ctx, apiID)
	})
}

func (r *TeamRepository) ListByLeagueSeason(ctx context.Context, leagueID int64, season int) ([]team.Team, error) {
	return loadList(ctx, r.cache, key("team", "league", leagueID, season), func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByLeagueSeason(ctx, leagueID, season)
	})
}

func (r *TeamRepository) SearchByName(ctx context.Context, name string) ([]team.Team, error) {
	return loadList(ctx, r.cache, key("team", "name", name), func(ctx context.Context) ([]team.Team, error) {
		return r.next.SearchByName(ctx, name)
	})
}

func (r *TeamRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ExistsByAPIID(ctx context.Context, apiID int64) (bool, error) {
	return r.next.ExistsByAPIID(ctx, apiID)
}

func (r *PlayerRepository) Insert(ctx context.Context, item player.Player) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) GetByAPIIDAndSeason(ctx context.Context, apiID int64, season int) (player.Player, bool, error) {
	return loadOne(ctx, r.cache, key("player", "id", apiID, season), func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetByAPIIDAndSeason(ctx, apiID, season)
	})
}

func (r *PlayerRepository) GetFirstByAPIID(ctx context.Context, apiID int64) (player.Player, bool, error) {
	return loadOne(ctx, r.cache, key("player", "id", apiID), func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetFirstByAPIID(ctx, apiID)
	})
}

func (r *PlayerRepository) ListByTeamSeason(ctx context.Context, teamID int64, season int) ([]player.Player, error) {
	return loadList(ctx, r.cache, key("player", "team", teamID, season), func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByTeamSeason(ctx, teamID, season)
	})
}

func (r *PlayerRepository) SearchByName(ctx context.Context, name string) ([]player.Player, error) {
	return loadList(ctx, r.cache, key("player", "name", name), func(ctx context.Context) ([]player.Player, error) {
		return r.next.SearchByName(ctx, name)
	})
}

func (r *PlayerRepository) SearchByNameLeagueSeason(ctx context.Context, name string, leagueID int64, season int) ([]player.Player, error) {
	return loadList(ctx, r.cache, key("player", "name", name, leagueID, season), func(ctx context.Context) ([]player.Player, error) {
		return r.next.SearchByNameLeagueSeason(ctx, name, leagueID, season)
	})
}

func (r *PlayerRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}

type SquadRepository struct {
	next  squad.Repository
	cache *basecache.Store
}

func NewSquadRepository(next squad.Repository, cache *basecache.Store) *SquadRepository {
	return &SquadRepository{next: next, cache: cache}
}

func (r *SquadRepository) Replace(ctx context.Context, teamID int64, rawJSON string) error {
	if err := r.next.Replace(ctx, teamID, rawJSON); err != nil {
		return err
	}
	r.cache.Delete(ctx, key("squad", teamID))
	return nil
}

func (r *SquadRepository) GetByTeamID(ctx context.Context, teamID int64) (squad.Squad, bool, error) {
	return loadOne(ctx, r.cache, key("squad", teamID), func(ctx context.Context) (squad.Squad, bool, error) {
		return r.next.GetByTeamID(ctx, teamID)
	})
}

func (r *SquadRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}

type StandingsRepository struct {
	next  standings.Repository
	cache *basecache.Store
}

func NewStandingsRepository(next standings.Repository, cache *basecache.Store) *StandingsRepository {
	return &StandingsRepository{next: next, cache: cache}
}

func (r *StandingsRepository) Replace(ctx context.Context, leagueID int64, season int, rawJSON string) error {
	if err := r.next.Replace(ctx, leagueID, season, rawJSON); err != nil {
		return err
	}
	r.cache.Delete(ctx, key("standings", leagueID, season))
	return nil
}

func (r *StandingsRepository) Get(ctx context.Context, leagueID int64, season int) (standings.Standings, bool, error) {
	return loadOne(ctx, r.cache, key("standings", leagueID, season), func(ctx context.Context) (standings.Standings, bool, error) {
		return r.next.Get(ctx, leagueID, season)
	})
}

func (r *StandingsRepository) Count(ctx context.Context) (int64, error) {
	return r.next.Count(ctx)
}
