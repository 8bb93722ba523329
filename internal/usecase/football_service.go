package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
	"github.com/riskibarqy/football-cache/internal/platform/logging"
)

const (
	teamSearchSufficientMatches   = 5
	playerSearchSufficientMatches = 3
	minSearchTermLength           = 3
)

// LeagueRefreshResult reports the outcome of a forced league refresh.
type LeagueRefreshResult struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
}

// FootballService serves football data from the persistent cache and falls
// through to API-Football on a miss, writing fetched data back.
type FootballService struct {
	api    FootballAPI
	cache  *FootballCacheService
	logger *logging.Logger
}

func NewFootballService(api FootballAPI, cache *FootballCacheService, logger *logging.Logger) *FootballService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FootballService{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

type readThroughOp[E any] struct {
	name            string
	cached          func(context.Context) (*apimodel.Envelope[E], error)
	sufficient      func(*apimodel.Envelope[E]) bool
	fetch           func(context.Context) (*apimodel.Envelope[E], error)
	store           func(context.Context, *apimodel.Envelope[E]) error
	fallbackOnError bool
}

// readThrough returns the cached envelope when it is sufficient, otherwise
// fetches, writes back and returns the fresh envelope. Cache read and write
// failures never fail the call.
func readThrough[E any](ctx context.Context, s *FootballService, op readThroughOp[E]) (*apimodel.Envelope[E], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballService."+op.name, attrOp.String(op.name))
	defer span.End()

	cached, err := op.cached(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed, treating as miss", "op", op.name, "error", err)
		cached = nil
	}
	if cached != nil && op.sufficient(cached) {
		span.SetAttributes(attrCacheHit.Bool(true), attrResults.Int(cached.Len()))
		s.logger.DebugContext(ctx, "cache hit", "op", op.name, "results", cached.Len())
		return cached, nil
	}
	span.SetAttributes(attrCacheHit.Bool(false))

	fresh, err := op.fetch(ctx)
	if err != nil {
		if op.fallbackOnError && cached != nil {
			span.SetAttributes(attrFallback.Bool(true), attrResults.Int(cached.Len()))
			s.logger.WarnContext(ctx, "upstream failed, serving partial cache", "op", op.name, "results", cached.Len(), "error", err)
			return cached, nil
		}
		err = fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op.name, err)
		spanError(span, err)
		return nil, err
	}
	if fresh == nil {
		span.SetAttributes(attrResults.Int(0))
		return apimodel.NewEnvelope[E]("", nil), nil
	}
	span.SetAttributes(attrResults.Int(fresh.Len()))

	// Every non-nil answer is handed to store, empty ones included; row-based
	// stores skip empty envelopes, document stores keep them as a hit.
	if err := op.store(ctx, fresh); err != nil {
		span.SetAttributes(attrWriteBack.Bool(false))
		s.logger.WarnContext(ctx, "cache write-back failed", "op", op.name, "error", err)
	} else {
		span.SetAttributes(attrWriteBack.Bool(true))
	}
	return fresh, nil
}

func atLeast[E any](n int) func(*apimodel.Envelope[E]) bool {
	return func(env *apimodel.Envelope[E]) bool {
		return env.Len() >= n
	}
}

func present[E any](env *apimodel.Envelope[E]) bool {
	return env != nil
}

func passThrough[E any](ctx context.Context, s *FootballService, name string, fetch func(context.Context) (*apimodel.Envelope[E], error)) (*apimodel.Envelope[E], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballService."+name, attrOp.String(name))
	defer span.End()

	out, err := fetch(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, name, err)
		spanError(span, err)
		return nil, err
	}
	if out == nil {
		out = apimodel.NewEnvelope[E]("", nil)
	}
	return out, nil
}

// Leagues.

func (s *FootballService) GetLeagues(ctx context.Context) (*apimodel.LeagueResponse, error) {
	return readThrough(ctx, s, readThroughOp[apimodel.LeagueData]{
		name:            "GetLeagues",
		cached:          s.cache.GetAllLeagues,
		sufficient:      atLeast[apimodel.LeagueData](1),
		fetch:           s.api.GetLeagues,
		store:           s.saveLeagues,
		fallbackOnError: true,
	})
}

func (s *FootballService) GetLeagueByID(ctx context.Context, leagueID int64) (*apimodel.LeagueResponse, error) {
	if err := requirePositive("league id", leagueID); err != nil {
		return nil, err
	}

	return readThrough(ctx, s, readThroughOp[apimodel.LeagueData]{
		name: "GetLeagueByID",
		cached: func(ctx context.Context) (*apimodel.LeagueResponse, error) {
			return s.cache.GetLeagueByID(ctx, leagueID)
		},
		sufficient: present[apimodel.LeagueData],
		fetch: func(ctx context.Context) (*apimodel.LeagueResponse, error) {
			return s.api.GetLeagueByID(ctx, leagueID)
		},
		store: s.saveLeagues,
	})
}

func (s *FootballService) GetLeaguesByCountry(ctx context.Context, country string) (*apimodel.LeagueResponse, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, fmt.Errorf("%w: country is required", ErrInvalidInput)
	}

	return readThrough(ctx, s, readThroughOp[apimodel.LeagueData]{
		name: "GetLeaguesByCountry",
		cached: func(ctx context.Context) (*apimodel.LeagueResponse, error) {
			return s.cache.GetLeaguesByCountry(ctx, country)
		},
		sufficient: atLeast[apimodel.LeagueData](1),
		fetch: func(ctx context.Context) (*apimodel.LeagueResponse, error) {
			return s.api.GetLeaguesByCountry(ctx, country)
		},
		store: s.saveLeagues,
	})
}

func (s *FootballService) SearchLeagues(ctx context.Context, query string) (*apimodel.LeagueResponse, error) {
	query, err := requireSearchTerm("query", query)
	if err != nil {
		return nil, err
	}

	return readThrough(ctx, s, readThroughOp[apimodel.LeagueData]{
		name: "SearchLeagues",
		cached: func(ctx context.Context) (*apimodel.LeagueResponse, error) {
			return s.cache.SearchLeagues(ctx, query)
		},
		sufficient: atLeast[apimodel.LeagueData](1),
		fetch: func(ctx context.Context) (*apimodel.LeagueResponse, error) {
			return s.api.SearchLeagues(ctx, query)
		},
		store:           s.saveLeagues,
		fallbackOnError: true,
	})
}

func (s *FootballService) GetLeaguesByTeam(ctx context.Context, teamID int64, season int) (*apimodel.LeagueResponse, error) {
	if err := requirePositive("team id", teamID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)
	return passThrough(ctx, s, "GetLeaguesByTeam", func(ctx context.Context) (*apimodel.LeagueResponse, error) {
		return s.api.GetLeaguesByTeam(ctx, teamID, season)
	})
}

func (s *FootballService) saveLeagues(ctx context.Context, resp *apimodel.LeagueResponse) error {
	_, err := s.cache.SaveLeagues(ctx, resp)
	return err
}

// Teams.

func (s *FootballService) GetTeamsByLeague(ctx context.Context, leagueID int64, season int) (*apimodel.TeamResponse, error) {
	if err := requirePositive("league id", leagueID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)

	return readThrough(ctx, s, readThroughOp[apimodel.TeamData]{
		name: "GetTeamsByLeague",
		cached: func(ctx context.Context) (*apimodel.TeamResponse, error) {
			return s.cache.GetTeamsByLeague(ctx, leagueID, season)
		},
		sufficient: atLeast[apimodel.TeamData](1),
		fetch: func(ctx context.Context) (*apimodel.TeamResponse, error) {
			return s.api.GetTeamsByLeague(ctx, leagueID, season)
		},
		store: func(ctx context.Context, resp *apimodel.TeamResponse) error {
			return s.cache.SaveTeams(ctx, resp, leagueID, season)
		},
		fallbackOnError: true,
	})
}

func (s *FootballService) GetTeamByID(ctx context.Context, teamID int64) (*apimodel.TeamResponse, error) {
	if err := requirePositive("team id", teamID); err != nil {
		return nil, err
	}

	return readThrough(ctx, s, readThroughOp[apimodel.TeamData]{
		name: "GetTeamByID",
		cached: func(ctx context.Context) (*apimodel.TeamResponse, error) {
			return s.cache.GetTeamByID(ctx, teamID)
		},
		sufficient: present[apimodel.TeamData],
		fetch: func(ctx context.Context) (*apimodel.TeamResponse, error) {
			return s.api.GetTeamByID(ctx, teamID)
		},
		store: s.cache.SaveTeam,
	})
}

// SearchTeams skips the upstream once the cache already holds enough matches,
// accepting that newer upstream matches may be missed.
func (s *FootballService) SearchTeams(ctx context.Context, name string) (*apimodel.TeamResponse, error) {
	name, err := requireSearchTerm("name", name)
	if err != nil {
		return nil, err
	}

	return readThrough(ctx, s, readThroughOp[apimodel.TeamData]{
		name: "SearchTeams",
		cached: func(ctx context.Context) (*apimodel.TeamResponse, error) {
			return s.cache.SearchTeams(ctx, name)
		},
		sufficient: atLeast[apimodel.TeamData](teamSearchSufficientMatches),
		fetch: func(ctx context.Context) (*apimodel.TeamResponse, error) {
			return s.api.SearchTeams(ctx, name)
		},
		store:           s.cache.SaveTeam,
		fallbackOnError: true,
	})
}

// Players.

func (s *FootballService) GetPlayersByTeam(ctx context.Context, teamID int64, season int) (*apimodel.PlayerResponse, error) {
	if err := requirePositive("team id", teamID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)

	return readThrough(ctx, s, readThroughOp[apimodel.PlayerData]{
		name: "GetPlayersByTeam",
		cached: func(ctx context.Context) (*apimodel.PlayerResponse, error) {
			return s.cache.GetPlayersByTeam(ctx, teamID, season)
		},
		sufficient: atLeast[apimodel.PlayerData](1),
		fetch: func(ctx context.Context) (*apimodel.PlayerResponse, error) {
			return s.api.GetPlayersByTeam(ctx, teamID, season)
		},
		store:           s.savePlayers(season),
		fallbackOnError: true,
	})
}

func (s *FootballService) GetPlayerByID(ctx context.Context, playerID int64, season int) (*apimodel.PlayerResponse, error) {
	if err := requirePositive("player id", playerID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)

	return readThrough(ctx, s, readThroughOp[apimodel.PlayerData]{
		name: "GetPlayerByID",
		cached: func(ctx context.Context) (*apimodel.PlayerResponse, error) {
			return s.cache.GetPlayerByID(ctx, playerID, season)
		},
		sufficient: present[apimodel.PlayerData],
		fetch: func(ctx context.Context) (*apimodel.PlayerResponse, error) {
			return s.api.GetPlayerByID(ctx, playerID, season)
		},
		store: s.savePlayers(season),
	})
}

func (s *FootballService) SearchPlayers(ctx context.Context, name string, leagueID int64, season int) (*apimodel.PlayerResponse, error) {
	name, err := requireSearchTerm("name", name)
	if err != nil {
		return nil, err
	}
	if err := requirePositive("league id", leagueID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)

	return readThrough(ctx, s, readThroughOp[apimodel.PlayerData]{
		name: "SearchPlayers",
		cached: func(ctx context.Context) (*apimodel.PlayerResponse, error) {
			return s.cache.SearchPlayers(ctx, name, leagueID, season)
		},
		sufficient: atLeast[apimodel.PlayerData](playerSearchSufficientMatches),
		fetch: func(ctx context.Context) (*apimodel.PlayerResponse, error) {
			return s.api.SearchPlayers(ctx, name, leagueID, season)
		},
		store:           s.savePlayers(season),
		fallbackOnError: true,
	})
}

func (s *FootballService) GetTopScorers(ctx context.Context, leagueID int64, season int) (*apimodel.PlayerResponse, error) {
	if err := requirePositive("league id", leagueID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)
	return passThrough(ctx, s, "GetTopScorers", func(ctx context.Context) (*apimodel.PlayerResponse, error) {
		return s.api.GetTopScorers(ctx, leagueID, season)
	})
}

func (s *FootballService) savePlayers(season int) func(context.Context, *apimodel.PlayerResponse) error {
	return func(ctx context.Context, resp *apimodel.PlayerResponse) error {
		return s.cache.SavePlayers(ctx, resp, season)
	}
}

// Standings and squads.

func (s *FootballService) GetStandings(ctx context.Context, leagueID int64, season int) (*apimodel.StandingsResponse, error) {
	if err := requirePositive("league id", leagueID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)

	return readThrough(ctx, s, readThroughOp[apimodel.StandingsData]{
		name: "GetStandings",
		cached: func(ctx context.Context) (*apimodel.StandingsResponse, error) {
			return s.cache.GetStandings(ctx, leagueID, season)
		},
		sufficient: present[apimodel.StandingsData],
		fetch: func(ctx context.Context) (*apimodel.StandingsResponse, error) {
			return s.api.GetStandings(ctx, leagueID, season)
		},
		store: func(ctx context.Context, resp *apimodel.StandingsResponse) error {
			return s.cache.SaveStandings(ctx, resp, leagueID, season)
		},
	})
}

func (s *FootballService) GetTeamSquad(ctx context.Context, teamID int64) (*apimodel.SquadResponse, error) {
	if err := requirePositive("team id", teamID); err != nil {
		return nil, err
	}

	return readThrough(ctx, s, readThroughOp[apimodel.TeamSquad]{
		name: "GetTeamSquad",
		cached: func(ctx context.Context) (*apimodel.SquadResponse, error) {
			return s.cache.GetSquad(ctx, teamID)
		},
		sufficient: present[apimodel.TeamSquad],
		fetch: func(ctx context.Context) (*apimodel.SquadResponse, error) {
			return s.api.GetTeamSquad(ctx, teamID)
		},
		store: func(ctx context.Context, resp *apimodel.SquadResponse) error {
			return s.cache.SaveSquad(ctx, resp, teamID)
		},
	})
}

// Fixtures are time-volatile and never cached.

func (s *FootballService) GetLiveFixtures(ctx context.Context) (*apimodel.FixtureResponse, error) {
	return passThrough(ctx, s, "GetLiveFixtures", s.api.GetLiveFixtures)
}

func (s *FootballService) GetFixturesByDate(ctx context.Context, date string) (*apimodel.FixtureResponse, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(apimodel.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return passThrough(ctx, s, "GetFixturesByDate", func(ctx context.Context) (*apimodel.FixtureResponse, error) {
		return s.api.GetFixturesByDate(ctx, date)
	})
}

func (s *FootballService) GetFixturesByLeague(ctx context.Context, leagueID int64, season int) (*apimodel.FixtureResponse, error) {
	if err := requirePositive("league id", leagueID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)
	return passThrough(ctx, s, "GetFixturesByLeague", func(ctx context.Context) (*apimodel.FixtureResponse, error) {
		return s.api.GetFixturesByLeague(ctx, leagueID, season)
	})
}

func (s *FootballService) GetFixturesByTeam(ctx context.Context, teamID int64, season int) (*apimodel.FixtureResponse, error) {
	if err := requirePositive("team id", teamID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)
	return passThrough(ctx, s, "GetFixturesByTeam", func(ctx context.Context) (*apimodel.FixtureResponse, error) {
		return s.api.GetFixturesByTeam(ctx, teamID, season)
	})
}

func (s *FootballService) GetFixturesByRound(ctx context.Context, leagueID int64, season int, round string) (*apimodel.FixtureResponse, error) {
	if err := requirePositive("league id", leagueID); err != nil {
		return nil, err
	}
	round = strings.TrimSpace(round)
	if round == "" {
		return nil, fmt.Errorf("%w: round is required", ErrInvalidInput)
	}
	season = s.seasonOrCurrent(season)
	return passThrough(ctx, s, "GetFixturesByRound", func(ctx context.Context) (*apimodel.FixtureResponse, error) {
		return s.api.GetFixturesByRound(ctx, leagueID, season, round)
	})
}

func (s *FootballService) GetLatestRound(ctx context.Context, leagueID int64, season int) (*apimodel.FixtureResponse, error) {
	if err := requirePositive("league id", leagueID); err != nil {
		return nil, err
	}
	season = s.seasonOrCurrent(season)
	return passThrough(ctx, s, "GetLatestRound", func(ctx context.Context) (*apimodel.FixtureResponse, error) {
		return s.api.GetLatestRound(ctx, leagueID, season)
	})
}

// GetLatestAvailableDate returns today when no fixture date was found in the
// lookback window.
func (s *FootballService) GetLatestAvailableDate(ctx context.Context, leagueID int64, season int) (string, error) {
	if err := requirePositive("league id", leagueID); err != nil {
		return "", err
	}
	season = s.seasonOrCurrent(season)

	ctx, span := startUsecaseSpan(ctx, "usecase.FootballService.GetLatestAvailableDate")
	defer span.End()

	date, err := s.api.GetLatestAvailableDate(ctx, leagueID, season)
	if err != nil {
		return "", fmt.Errorf("%w: GetLatestAvailableDate: %w", ErrDependencyUnavailable, err)
	}
	return date, nil
}

func (s *FootballService) GetFixtureByID(ctx context.Context, fixtureID int64) (*apimodel.FixtureResponse, error) {
	if err := requirePositive("fixture id", fixtureID); err != nil {
		return nil, err
	}
	return passThrough(ctx, s, "GetFixtureByID", func(ctx context.Context) (*apimodel.FixtureResponse, error) {
		return s.api.GetFixtureByID(ctx, fixtureID)
	})
}

func (s *FootballService) GetFixtureEvents(ctx context.Context, fixtureID int64) (*apimodel.FixtureEventsResponse, error) {
	if err := requirePositive("fixture id", fixtureID); err != nil {
		return nil, err
	}
	return passThrough(ctx, s, "GetFixtureEvents", func(ctx context.Context) (*apimodel.FixtureEventsResponse, error) {
		return s.api.GetFixtureEvents(ctx, fixtureID)
	})
}

func (s *FootballService) GetFixtureStatistics(ctx context.Context, fixtureID int64) (*apimodel.FixtureStatisticsResponse, error) {
	if err := requirePositive("fixture id", fixtureID); err != nil {
		return nil, err
	}
	return passThrough(ctx, s, "GetFixtureStatistics", func(ctx context.Context) (*apimodel.FixtureStatisticsResponse, error) {
		return s.api.GetFixtureStatistics(ctx, fixtureID)
	})
}

// Management.

func (s *FootballService) IsConfigured() bool {
	return s.api.IsConfigured()
}

func (s *FootballService) CurrentSeason() int {
	return s.api.CurrentSeason()
}

func (s *FootballService) CacheStats(ctx context.Context) (CacheStats, error) {
	stats, err := s.cache.Stats(ctx)
	if err != nil {
		return CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}

// ForceRefreshLeagues re-fetches the league catalogue. Leagues already cached
// are left as they are; only missing ones are added.
func (s *FootballService) ForceRefreshLeagues(ctx context.Context) (LeagueRefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballService.ForceRefreshLeagues")
	defer span.End()

	resp, err := s.api.GetLeagues(ctx)
	if err != nil {
		return LeagueRefreshResult{}, fmt.Errorf("%w: refresh leagues: %w", ErrDependencyUnavailable, err)
	}

	inserted, err := s.cache.SaveLeagues(ctx, resp)
	if err != nil {
		return LeagueRefreshResult{}, fmt.Errorf("save refreshed leagues: %w", err)
	}

	result := LeagueRefreshResult{Fetched: resp.Len(), Inserted: inserted}
	s.logger.InfoContext(ctx, "league cache refreshed", "fetched", result.Fetched, "inserted", result.Inserted)
	return result, nil
}

func (s *FootballService) seasonOrCurrent(season int) int {
	if season > 0 {
		return season
	}
	return s.api.CurrentSeason()
}

func requirePositive(field string, value int64) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be > 0", ErrInvalidInput, field)
	}
	return nil
}

func requireSearchTerm(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) < minSearchTermLength {
		return "", fmt.Errorf("%w: %s must be at least %d characters", ErrInvalidInput, field, minSearchTermLength)
	}
	return value, nil
}
