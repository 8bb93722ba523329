package usecase

import (
	"context"
	"errors"
	"testing"

	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
	"github.com/riskibarqy/football-cache/internal/domain/league"
	"github.com/riskibarqy/football-cache/internal/domain/player"
	"github.com/riskibarqy/football-cache/internal/domain/team"
	"github.com/riskibarqy/football-cache/internal/infrastructure/repository/memory"
	leaguemock "github.com/riskibarqy/football-cache/internal/mocks/domain/league"
	"github.com/stretchr/testify/mock"
)

type testStores struct {
	leagues   *memory.LeagueRepository
	teams     *memory.TeamRepository
	players   *memory.PlayerRepository
	squads    *memory.SquadRepository
	standings *memory.StandingsRepository
}

func newTestStores() testStores {
	return testStores{
		leagues:   memory.NewLeagueRepository(),
		teams:     memory.NewTeamRepository(),
		players:   memory.NewPlayerRepository(),
		squads:    memory.NewSquadRepository(),
		standings: memory.NewStandingsRepository(),
	}
}

func (s testStores) repositories() FootballCacheRepositories {
	return FootballCacheRepositories{
		Leagues:   s.leagues,
		Teams:     s.teams,
		Players:   s.players,
		Squads:    s.squads,
		Standings: s.standings,
	}
}

func newTestFootballService(api FootballAPI, stores testStores) *FootballService {
	return NewFootballService(api, NewFootballCacheService(stores.repositories(), nil), nil)
}

func leagueItem(id int64, name, country string) apimodel.LeagueData {
	return apimodel.LeagueData{
		League:  apimodel.LeagueInfo{ID: id, Name: name, Type: "League"},
		Country: apimodel.Country{Name: country},
		Seasons: []apimodel.Season{{Year: 2023}, {Year: 2024, Current: true}},
	}
}

func teamItem(id int64, name string) apimodel.TeamData {
	return apimodel.TeamData{Team: apimodel.TeamInfo{ID: id, Name: name, Country: "England"}}
}

func playerItem(id int64, name string, teamID, leagueID int64) apimodel.PlayerData {
	return apimodel.PlayerData{
		Player: apimodel.PlayerInfo{ID: id, Name: name},
		Statistics: []apimodel.PlayerStatistics{{
			Team:   apimodel.TeamRef{ID: teamID, Name: "Team"},
			League: apimodel.PlayerLeague{ID: &leagueID, Name: "League"},
			Games:  apimodel.PlayerGames{Position: "Attacker"},
		}},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestFootballService_GetLeagues_MissFetchesThenServesFromCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := newStubFootballAPI()
	api.leagues = apimodel.NewEnvelope("leagues", []apimodel.LeagueData{
		leagueItem(39, "Premier League", "England"),
		leagueItem(140, "La Liga", "Spain"),
	})
	stores := newTestStores()
	service := newTestFootballService(api, stores)

	first, err := service.GetLeagues(ctx)
	if err != nil {
		t.Fatalf("get leagues: %v", err)
	}
	if first.Len() != 2 {
		t.Fatalf("unexpected league count: got=%d want=2", first.Len())
	}

	second, err := service.GetLeagues(ctx)
	if err != nil {
		t.Fatalf("get leagues from cache: %v", err)
	}
	if second.Len() != 2 {
		t.Fatalf("unexpected cached league count: got=%d want=2", second.Len())
	}
	if got := api.callCount("GetLeagues"); got != 1 {
		t.Fatalf("expected one upstream call, got=%d", got)
	}
	if second.Get != "leagues" || second.Results != 2 {
		t.Fatalf("unexpected rebuilt envelope: get=%q results=%d", second.Get, second.Results)
	}

	row, ok, err := stores.leagues.GetByAPIID(ctx, 39)
	if err != nil || !ok {
		t.Fatalf("expected league 39 cached, ok=%v err=%v", ok, err)
	}
	if row.CurrentSeason == nil || *row.CurrentSeason != 2024 {
		t.Fatalf("expected current season 2024, got %v", row.CurrentSeason)
	}
}

func TestFootballService_GetLeagueByID_UpstreamFailureWithoutFallback(t *testing.T) {
	t.Parallel()

	api := newStubFootballAPI().failWith("GetLeagueByID", errors.New("connection refused"))
	service := newTestFootballService(api, newTestStores())

	_, err := service.GetLeagueByID(context.Background(), 39)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestFootballService_GetLeagueByID_HitSkipsUpstream(t *testing.T) {
	t.Parallel()

	stores := newTestStores()
	stores.leagues = memory.NewLeagueRepository(league.League{APIID: 39, Name: "Premier League", CountryName: "England"})
	api := newStubFootballAPI()
	service := newTestFootballService(api, stores)

	resp, err := service.GetLeagueByID(context.Background(), 39)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if resp.Len() != 1 || resp.Response[0].League.Name != "Premier League" {
		t.Fatalf("unexpected league envelope: %+v", resp)
	}
	if api.totalCalls() != 0 {
		t.Fatalf("expected no upstream calls, got=%d", api.totalCalls())
	}
}

func TestFootballService_SearchTeams_Thresholds(t *testing.T) {
	t.Parallel()

	seed := func(n int) *memory.TeamRepository {
		items := make([]team.Team, 0, n)
		for i := range n {
			items = append(items, team.Team{APIID: int64(100 + i), Name: "United " + string(rune('A'+i))})
		}
		return memory.NewTeamRepository(items...)
	}

	t.Run("enough cached matches skip upstream", func(t *testing.T) {
		stores := newTestStores()
		stores.teams = seed(5)
		api := newStubFootballAPI()
		service := newTestFootballService(api, stores)

		resp, err := service.SearchTeams(context.Background(), "united")
		if err != nil {
			t.Fatalf("search teams: %v", err)
		}
		if resp.Len() != 5 {
			t.Fatalf("unexpected team count: got=%d want=5", resp.Len())
		}
		if api.callCount("SearchTeams") != 0 {
			t.Fatalf("expected no upstream search")
		}
	})

	t.Run("partial cache is served when upstream fails", func(t *testing.T) {
		stores := newTestStores()
		stores.teams = seed(2)
		api := newStubFootballAPI().failWith("SearchTeams", errors.New("status 503"))
		service := newTestFootballService(api, stores)

		resp, err := service.SearchTeams(context.Background(), "united")
		if err != nil {
			t.Fatalf("expected fallback, got %v", err)
		}
		if resp.Len() != 2 {
			t.Fatalf("unexpected team count: got=%d want=2", resp.Len())
		}
		if api.callCount("SearchTeams") != 1 {
			t.Fatalf("expected one upstream search")
		}
	})

	t.Run("insufficient cache fetches and stores", func(t *testing.T) {
		stores := newTestStores()
		stores.teams = seed(1)
		api := newStubFootballAPI()
		api.teams = apimodel.NewEnvelope("teams", []apimodel.TeamData{
			teamItem(100, "United A"),
			teamItem(200, "Newcastle United"),
		})
		service := newTestFootballService(api, stores)

		resp, err := service.SearchTeams(context.Background(), "united")
		if err != nil {
			t.Fatalf("search teams: %v", err)
		}
		if resp.Len() != 2 {
			t.Fatalf("expected upstream envelope, got=%d", resp.Len())
		}
		count, _ := stores.teams.Count(context.Background())
		if count != 2 {
			t.Fatalf("expected only the new team stored, count=%d", count)
		}
	})
}

func TestFootballService_SearchPlayers_FallbackAndThreshold(t *testing.T) {
	t.Parallel()

	stores := newTestStores()
	leagueID := int64(39)
	stores.players = memory.NewPlayerRepository(
		player.Player{APIID: 1, Name: "Mohamed Salah", SearchKey: player.SearchKeyFor("Mohamed Salah"), LeagueID: &leagueID, Season: 2024},
	)
	api := newStubFootballAPI().failWith("SearchPlayers", errors.New("timeout"))
	service := newTestFootballService(api, stores)

	resp, err := service.SearchPlayers(context.Background(), "salah", 39, 2024)
	if err != nil {
		t.Fatalf("expected partial cache, got %v", err)
	}
	if resp.Len() != 1 {
		t.Fatalf("unexpected player count: got=%d want=1", resp.Len())
	}
}

func TestFootballService_GetTeamsByLeague_SeasonDefaultsToCurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := newStubFootballAPI()
	api.teams = apimodel.NewEnvelope("teams", []apimodel.TeamData{teamItem(33, "Manchester United")})
	stores := newTestStores()
	service := newTestFootballService(api, stores)

	if _, err := service.GetTeamsByLeague(ctx, 39, 0); err != nil {
		t.Fatalf("get teams: %v", err)
	}
	if api.lastSeason != 2024 {
		t.Fatalf("expected current season 2024, got=%d", api.lastSeason)
	}

	rows, err := stores.teams.ListByLeagueSeason(ctx, 39, 2024)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected team stored under league season, got=%d", len(rows))
	}
}

func TestFootballService_GetTeamsByLeague_RefreshesExistingRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	cache := NewFootballCacheService(stores.repositories(), nil)

	first := apimodel.NewEnvelope("teams", []apimodel.TeamData{teamItem(33, "Man Utd")})
	if err := cache.SaveTeams(ctx, first, 39, 2024); err != nil {
		t.Fatalf("save teams: %v", err)
	}
	renamed := apimodel.NewEnvelope("teams", []apimodel.TeamData{teamItem(33, "Manchester United")})
	if err := cache.SaveTeams(ctx, renamed, 39, 2024); err != nil {
		t.Fatalf("save renamed teams: %v", err)
	}

	resp, err := cache.GetTeamsByLeague(ctx, 39, 2024)
	if err != nil {
		t.Fatalf("get cached teams: %v", err)
	}
	if resp.Len() != 1 || resp.Response[0].Team.Name != "Manchester United" {
		t.Fatalf("expected refreshed team row, got %+v", resp.Response)
	}
}

func TestFootballService_GetPlayerByID_FallsBackToAnySeason(t *testing.T) {
	t.Parallel()

	stores := newTestStores()
	stores.players = memory.NewPlayerRepository(player.Player{APIID: 276, Name: "Neymar", Season: 2023})
	api := newStubFootballAPI()
	service := newTestFootballService(api, stores)

	resp, err := service.GetPlayerByID(context.Background(), 276, 2024)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if resp.Len() != 1 || resp.Response[0].Player.ID != 276 {
		t.Fatalf("unexpected player envelope: %+v", resp)
	}
	if api.totalCalls() != 0 {
		t.Fatalf("expected cached player from another season to count as hit")
	}
}

func TestFootballService_GetPlayersByTeam_StoresFromStatistics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := newStubFootballAPI()
	api.players = apimodel.NewEnvelope("players", []apimodel.PlayerData{
		playerItem(1100, "Erling Haaland", 50, 39),
		playerItem(1101, "Phil Foden", 50, 39),
	})
	stores := newTestStores()
	service := newTestFootballService(api, stores)

	if _, err := service.GetPlayersByTeam(ctx, 50, 2024); err != nil {
		t.Fatalf("get players: %v", err)
	}

	row, ok, err := stores.players.GetByAPIIDAndSeason(ctx, 1100, 2024)
	if err != nil || !ok {
		t.Fatalf("expected player cached, ok=%v err=%v", ok, err)
	}
	if row.TeamID == nil || *row.TeamID != 50 {
		t.Fatalf("expected team id 50, got %v", row.TeamID)
	}
	if row.SearchKey != "erling haaland" || row.Position != "Attacker" {
		t.Fatalf("unexpected derived columns: key=%q position=%q", row.SearchKey, row.Position)
	}

	resp, err := service.GetPlayersByTeam(ctx, 50, 2024)
	if err != nil {
		t.Fatalf("get cached players: %v", err)
	}
	if resp.Len() != 2 || api.callCount("GetPlayersByTeam") != 1 {
		t.Fatalf("expected cached players, len=%d calls=%d", resp.Len(), api.callCount("GetPlayersByTeam"))
	}
}

func TestFootballService_GetStandings_ReplaceRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := newStubFootballAPI()
	api.standings = apimodel.NewEnvelope("standings", []apimodel.StandingsData{{
		League: apimodel.StandingsLeague{ID: 39, Name: "Premier League", Season: 2024},
	}})
	stores := newTestStores()
	service := newTestFootballService(api, stores)

	if _, err := service.GetStandings(ctx, 39, 2024); err != nil {
		t.Fatalf("get standings: %v", err)
	}
	resp, err := service.GetStandings(ctx, 39, 2024)
	if err != nil {
		t.Fatalf("get cached standings: %v", err)
	}
	if resp.Len() != 1 || resp.Response[0].League.ID != 39 {
		t.Fatalf("unexpected standings envelope: %+v", resp)
	}
	if api.callCount("GetStandings") != 1 {
		t.Fatalf("expected one upstream call, got=%d", api.callCount("GetStandings"))
	}
}

func TestFootballService_GetTeamSquad_UnreadableRowIsMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	if err := stores.squads.Replace(ctx, 50, "{not json"); err != nil {
		t.Fatalf("seed squad: %v", err)
	}
	api := newStubFootballAPI()
	api.squad = apimodel.NewEnvelope("players/squads", []apimodel.TeamSquad{{Team: apimodel.TeamRef{ID: 50}}})
	service := newTestFootballService(api, stores)

	resp, err := service.GetTeamSquad(ctx, 50)
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	if resp.Len() != 1 || api.callCount("GetTeamSquad") != 1 {
		t.Fatalf("expected upstream squad, len=%d calls=%d", resp.Len(), api.callCount("GetTeamSquad"))
	}
	count, _ := stores.squads.Count(ctx)
	if count != 1 {
		t.Fatalf("expected replaced squad row, count=%d", count)
	}
}

func TestFootballService_CacheFailuresDoNotFailRequest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	leagueRepo.On("ListAll", mock.Anything).Return(nil, errors.New("db down")).Once()
	leagueRepo.On("ExistsByAPIID", mock.Anything, int64(39)).Return(false, nil).Once()
	leagueRepo.On("Insert", mock.Anything, mock.Anything).Return(false, errors.New("db down")).Once()

	stores := newTestStores()
	repos := stores.repositories()
	repos.Leagues = leagueRepo

	api := newStubFootballAPI()
	api.leagues = apimodel.NewEnvelope("leagues", []apimodel.LeagueData{leagueItem(39, "Premier League", "England")})
	service := NewFootballService(api, NewFootballCacheService(repos, nil), nil)

	resp, err := service.GetLeagues(ctx)
	if err != nil {
		t.Fatalf("expected upstream envelope despite cache failures, got %v", err)
	}
	if resp.Len() != 1 {
		t.Fatalf("unexpected league count: got=%d want=1", resp.Len())
	}
}

func TestFootballService_EmptyDocumentIsCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	api := newStubFootballAPI()
	service := newTestFootballService(api, stores)

	for range 2 {
		resp, err := service.GetStandings(ctx, 39, 2024)
		if err != nil {
			t.Fatalf("get standings: %v", err)
		}
		if !resp.IsEmpty() {
			t.Fatalf("expected empty standings envelope")
		}
		if _, err := service.GetTeamSquad(ctx, 50); err != nil {
			t.Fatalf("get squad: %v", err)
		}
	}

	if got := api.callCount("GetStandings"); got != 1 {
		t.Fatalf("expected empty standings to be served from cache, upstream calls=%d", got)
	}
	if got := api.callCount("GetTeamSquad"); got != 1 {
		t.Fatalf("expected empty squad to be served from cache, upstream calls=%d", got)
	}
}

func TestFootballService_EmptyListIsNotStored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	api := newStubFootballAPI()
	service := newTestFootballService(api, stores)

	if _, err := service.GetTeamsByLeague(ctx, 39, 2024); err != nil {
		t.Fatalf("get teams: %v", err)
	}
	count, _ := stores.teams.Count(ctx)
	if count != 0 {
		t.Fatalf("expected no team rows, count=%d", count)
	}
}

func TestFootballService_GetPlayersByTeam_StoresEachSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := newStubFootballAPI()
	api.players = apimodel.NewEnvelope("players", []apimodel.PlayerData{playerItem(1100, "Erling Haaland", 50, 39)})
	stores := newTestStores()
	service := newTestFootballService(api, stores)

	if _, err := service.GetPlayersByTeam(ctx, 50, 2023); err != nil {
		t.Fatalf("get 2023 players: %v", err)
	}
	for range 2 {
		resp, err := service.GetPlayersByTeam(ctx, 50, 2024)
		if err != nil {
			t.Fatalf("get 2024 players: %v", err)
		}
		if resp.Len() != 1 {
			t.Fatalf("expected one player, got=%d", resp.Len())
		}
	}

	if got := api.callCount("GetPlayersByTeam"); got != 2 {
		t.Fatalf("expected one upstream call per season, got=%d", got)
	}
	for _, season := range []int{2023, 2024} {
		if _, ok, err := stores.players.GetByAPIIDAndSeason(ctx, 1100, season); err != nil || !ok {
			t.Fatalf("expected player cached for season %d, ok=%v err=%v", season, ok, err)
		}
	}
}

func TestFootballService_GetLeaguesByTeam_SeasonDefaultsToCurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := newStubFootballAPI()
	service := newTestFootballService(api, newTestStores())

	if _, err := service.GetLeaguesByTeam(ctx, 33, 0); err != nil {
		t.Fatalf("get leagues by team: %v", err)
	}
	if api.lastSeason != 2024 {
		t.Fatalf("expected current season 2024, got=%d", api.lastSeason)
	}
	if _, err := service.GetLeaguesByTeam(ctx, 33, 2022); err != nil {
		t.Fatalf("get leagues by team: %v", err)
	}
	if api.lastSeason != 2022 {
		t.Fatalf("expected explicit season 2022, got=%d", api.lastSeason)
	}
}

func TestFootballService_InvalidInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := newStubFootballAPI()
	service := newTestFootballService(api, newTestStores())

	cases := map[string]func() error{
		"league id": func() error {
			_, err := service.GetLeagueByID(ctx, 0)
			return err
		},
		"short team search": func() error {
			_, err := service.SearchTeams(ctx, " ab ")
			return err
		},
		"player search league": func() error {
			_, err := service.SearchPlayers(ctx, "salah", -1, 2024)
			return err
		},
		"date format": func() error {
			_, err := service.GetFixturesByDate(ctx, "2024/08/17")
			return err
		},
		"blank round": func() error {
			_, err := service.GetFixturesByRound(ctx, 39, 2024, "  ")
			return err
		},
		"blank country": func() error {
			_, err := service.GetLeaguesByCountry(ctx, "")
			return err
		},
	}
	for name, call := range cases {
		if err := call(); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
	if api.totalCalls() != 0 {
		t.Fatalf("expected invalid input to short-circuit, calls=%d", api.totalCalls())
	}
}

func TestFootballService_PassThroughWrapsUpstreamErrors(t *testing.T) {
	t.Parallel()

	upstream := errors.New("status 500")
	api := newStubFootballAPI().
		failWith("GetLiveFixtures", upstream).
		failWith("GetLatestAvailableDate", upstream)
	service := newTestFootballService(api, newTestStores())

	_, err := service.GetLiveFixtures(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) || !errors.Is(err, upstream) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
	if _, err := service.GetLatestAvailableDate(context.Background(), 39, 0); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestFootballService_ForceRefreshLeaguesAppendsOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	stores.leagues = memory.NewLeagueRepository(league.League{APIID: 39, Name: "Old Name", CurrentSeason: ptr(2020)})
	api := newStubFootballAPI()
	api.leagues = apimodel.NewEnvelope("leagues", []apimodel.LeagueData{
		leagueItem(39, "Premier League", "England"),
		leagueItem(140, "La Liga", "Spain"),
	})
	service := newTestFootballService(api, stores)

	result, err := service.ForceRefreshLeagues(ctx)
	if err != nil {
		t.Fatalf("force refresh: %v", err)
	}
	if result.Fetched != 2 || result.Inserted != 1 {
		t.Fatalf("unexpected refresh result: %+v", result)
	}

	row, _, _ := stores.leagues.GetByAPIID(ctx, 39)
	if row.Name != "Old Name" {
		t.Fatalf("expected existing league untouched, got name=%q", row.Name)
	}
}

func TestFootballService_CacheStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stores := newTestStores()
	stores.leagues = memory.NewLeagueRepository(league.League{APIID: 39, Name: "Premier League"}, league.League{APIID: 140, Name: "La Liga"})
	stores.teams = memory.NewTeamRepository(team.Team{APIID: 33, Name: "Manchester United"})
	if err := stores.standings.Replace(ctx, 39, 2024, "{}"); err != nil {
		t.Fatalf("seed standings: %v", err)
	}
	service := newTestFootballService(newStubFootballAPI(), stores)

	stats, err := service.CacheStats(ctx)
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	want := CacheStats{Leagues: 2, Teams: 1, Standings: 1}
	if stats != want {
		t.Fatalf("unexpected stats: got=%+v want=%+v", stats, want)
	}
}
