package usecase

import (
	"context"

	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
)

// FootballAPI is the upstream API-Football surface the façade depends on.
type FootballAPI interface {
	IsConfigured() bool
	CurrentSeason() int

	GetLeagues(ctx context.Context) (*apimodel.LeagueResponse, error)
	GetLeagueByID(ctx context.Context, leagueID int64) (*apimodel.LeagueResponse, error)
	GetLeaguesByCountry(ctx context.Context, country string) (*apimodel.LeagueResponse, error)
	GetLeaguesByTeam(ctx context.Context, teamID int64, season int) (*apimodel.LeagueResponse, error)
	SearchLeagues(ctx context.Context, query string) (*apimodel.LeagueResponse, error)

	GetTeamsByLeague(ctx context.Context, leagueID int64, season int) (*apimodel.TeamResponse, error)
	GetTeamByID(ctx context.Context, teamID int64) (*apimodel.TeamResponse, error)
	SearchTeams(ctx context.Context, name string) (*apimodel.TeamResponse, error)

	GetPlayersByTeam(ctx context.Context, teamID int64, season int) (*apimodel.PlayerResponse, error)
	GetPlayerByID(ctx context.Context, playerID int64, season int) (*apimodel.PlayerResponse, error)
	SearchPlayers(ctx context.Context, name string, leagueID int64, season int) (*apimodel.PlayerResponse, error)
	GetTopScorers(ctx context.Context, leagueID int64, season int) (*apimodel.PlayerResponse, error)
	GetTeamSquad(ctx context.Context, teamID int64) (*apimodel.SquadResponse, error)
	GetStandings(ctx context.Context, leagueID int64, season int) (*apimodel.StandingsResponse, error)

	GetFixturesByLeague(ctx context.Context, leagueID int64, season int) (*apimodel.FixtureResponse, error)
	GetLiveFixtures(ctx context.Context) (*apimodel.FixtureResponse, error)
	GetFixturesByDate(ctx context.Context, date string) (*apimodel.FixtureResponse, error)
	GetFixturesByTeam(ctx context.Context, teamID int64, season int) (*apimodel.FixtureResponse, error)
	GetFixturesByRound(ctx context.Context, leagueID int64, season int, round string) (*apimodel.FixtureResponse, error)
	GetFixtureByID(ctx context.Context, fixtureID int64) (*apimodel.FixtureResponse, error)
	GetFixtureEvents(ctx context.Context, fixtureID int64) (*apimodel.FixtureEventsResponse, error)
	GetFixtureStatistics(ctx context.Context, fixtureID int64) (*apimodel.FixtureStatisticsResponse, error)
	GetLatestRound(ctx context.Context, leagueID int64, season int) (*apimodel.FixtureResponse, error)
	GetLatestAvailableDate(ctx context.Context, leagueID int64, season int) (string, error)
}
