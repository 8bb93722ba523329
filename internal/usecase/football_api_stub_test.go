package usecase

import (
	"context"
	"sync"

	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
)

// stubFootballAPI serves canned envelopes and counts calls per method.
type stubFootballAPI struct {
	mu     sync.Mutex
	calls  map[string]int
	errs   map[string]error
	season int

	lastSeason int

	leagues    *apimodel.LeagueResponse
	teams      *apimodel.TeamResponse
	players    *apimodel.PlayerResponse
	standings  *apimodel.StandingsResponse
	squad      *apimodel.SquadResponse
	fixtures   *apimodel.FixtureResponse
	latestDate string
}

func newStubFootballAPI() *stubFootballAPI {
	return &stubFootballAPI{
		calls:  make(map[string]int),
		errs:   make(map[string]error),
		season: 2024,
	}
}

func (s *stubFootballAPI) failWith(method string, err error) *stubFootballAPI {
	s.mu.Lock()
	s.errs[method] = err
	s.mu.Unlock()
	return s
}

func (s *stubFootballAPI) callCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *stubFootballAPI) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *stubFootballAPI) record(method string, season int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[method]++
	if season > 0 {
		s.lastSeason = season
	}
	return s.errs[method]
}

func stubResult[T any](s *stubFootballAPI, method string, season int, resp *apimodel.Envelope[T]) (*apimodel.Envelope[T], error) {
	if err := s.record(method, season); err != nil {
		return nil, err
	}
	if resp == nil {
		return apimodel.NewEnvelope[T](method, nil), nil
	}
	return resp, nil
}

func (s *stubFootballAPI) IsConfigured() bool { return true }

func (s *stubFootballAPI) CurrentSeason() int { return s.season }

func (s *stubFootballAPI) GetLeagues(context.Context) (*apimodel.LeagueResponse, error) {
	return stubResult(s, "GetLeagues", 0, s.leagues)
}

func (s *stubFootballAPI) GetLeagueByID(context.Context, int64) (*apimodel.LeagueResponse, error) {
	return stubResult(s, "GetLeagueByID", 0, s.leagues)
}

func (s *stubFootballAPI) GetLeaguesByCountry(context.Context, string) (*apimodel.LeagueResponse, error) {
	return stubResult(s, "GetLeaguesByCountry", 0, s.leagues)
}

func (s *stubFootballAPI) GetLeaguesByTeam(_ context.Context, _ int64, season int) (*apimodel.LeagueResponse, error) {
	return stubResult(s, "GetLeaguesByTeam", season, s.leagues)
}

func (s *stubFootballAPI) SearchLeagues(context.Context, string) (*apimodel.LeagueResponse, error) {
	return stubResult(s, "SearchLeagues", 0, s.leagues)
}

func (s *stubFootballAPI) GetTeamsByLeague(_ context.Context, _ int64, season int) (*apimodel.TeamResponse, error) {
	return stubResult(s, "GetTeamsByLeague", season, s.teams)
}

func (s *stubFootballAPI) GetTeamByID(context.Context, int64) (*apimodel.TeamResponse, error) {
	return stubResult(s, "GetTeamByID", 0, s.teams)
}

func (s *stubFootballAPI) SearchTeams(context.Context, string) (*apimodel.TeamResponse, error) {
	return stubResult(s, "SearchTeams", 0, s.teams)
}

func (s *stubFootballAPI) GetPlayersByTeam(_ context.Context, _ int64, season int) (*apimodel.PlayerResponse, error) {
	return stubResult(s, "GetPlayersByTeam", season, s.players)
}

func (s *stubFootballAPI) GetPlayerByID(_ context.Context, _ int64, season int) (*apimodel.PlayerResponse, error) {
	return stubResult(s, "GetPlayerByID", season, s.players)
}

func (s *stubFootballAPI) SearchPlayers(_ context.Context, _ string, _ int64, season int) (*apimodel.PlayerResponse, error) {
	return stubResult(s, "SearchPlayers", season, s.players)
}

func (s *stubFootballAPI) GetTopScorers(_ context.Context, _ int64, season int) (*apimodel.PlayerResponse, error) {
	return stubResult(s, "GetTopScorers", season, s.players)
}

func (s *stubFootballAPI) GetTeamSquad(context.Context, int64) (*apimodel.SquadResponse, error) {
	return stubResult(s, "GetTeamSquad", 0, s.squad)
}

func (s *stubFootballAPI) GetStandings(_ context.Context, _ int64, season int) (*apimodel.StandingsResponse, error) {
	return stubResult(s, "GetStandings", season, s.standings)
}

func (s *stubFootballAPI) GetFixturesByLeague(_ context.Context, _ int64, season int) (*apimodel.FixtureResponse, error) {
	return stubResult(s, "GetFixturesByLeague", season, s.fixtures)
}

func (s *stubFootballAPI) GetLiveFixtures(context.Context) (*apimodel.FixtureResponse, error) {
	return stubResult(s, "GetLiveFixtures", 0, s.fixtures)
}

func (s *stubFootballAPI) GetFixturesByDate(context.Context, string) (*apimodel.FixtureResponse, error) {
	return stubResult(s, "GetFixturesByDate", 0, s.fixtures)
}

func (s *stubFootballAPI) GetFixturesByTeam(_ context.Context, _ int64, season int) (*apimodel.FixtureResponse, error) {
	return stubResult(s, "GetFixturesByTeam", season, s.fixtures)
}

func (s *stubFootballAPI) GetFixturesByRound(_ context.Context, _ int64, season int, _ string) (*apimodel.FixtureResponse, error) {
	return stubResult(s, "GetFixturesByRound", season, s.fixtures)
}

func (s *stubFootballAPI) GetFixtureByID(context.Context, int64) (*apimodel.FixtureResponse, error) {
	return stubResult(s, "GetFixtureByID", 0, s.fixtures)
}

func (s *stubFootballAPI) GetFixtureEvents(context.Context, int64) (*apimodel.FixtureEventsResponse, error) {
	return stubResult[apimodel.FixtureEvent](s, "GetFixtureEvents", 0, nil)
}

func (s *stubFootballAPI) GetFixtureStatistics(context.Context, int64) (*apimodel.FixtureStatisticsResponse, error) {
	return stubResult[apimodel.TeamStatistics](s, "GetFixtureStatistics", 0, nil)
}

func (s *stubFootballAPI) GetLatestRound(_ context.Context, _ int64, season int) (*apimodel.FixtureResponse, error) {
	return stubResult(s, "GetLatestRound", season, s.fixtures)
}

func (s *stubFootballAPI) GetLatestAvailableDate(_ context.Context, _ int64, season int) (string, error) {
	if err := s.record("GetLatestAvailableDate", season); err != nil {
		return "", err
	}
	return s.latestDate, nil
}

var _ FootballAPI = (*stubFootballAPI)(nil)
