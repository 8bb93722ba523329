package apifootball

import (
	"context"
	"strconv"

	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
)

func (c *Client) GetLeagues(ctx context.Context) (*apimodel.LeagueResponse, error) {
	return getEnvelope[apimodel.LeagueData](ctx, c, "/leagues", nil)
}

func (c *Client) GetLeagueByID(ctx context.Context, leagueID int64) (*apimodel.LeagueResponse, error) {
	return getEnvelope[apimodel.LeagueData](ctx, c, "/leagues", params("id", itoa(leagueID)))
}

func (c *Client) GetLeaguesByCountry(ctx context.Context, country string) (*apimodel.LeagueResponse, error) {
	return getEnvelope[apimodel.LeagueData](ctx, c, "/leagues", params("country", country))
}

func (c *Client) GetLeaguesByTeam(ctx context.Context, teamID int64, season int) (*apimodel.LeagueResponse, error) {
	return getEnvelope[apimodel.LeagueData](ctx, c, "/leagues", params("team", itoa(teamID), "season", strconv.Itoa(season)))
}

func (c *Client) SearchLeagues(ctx context.Context, query string) (*apimodel.LeagueResponse, error) {
	return getEnvelope[apimodel.LeagueData](ctx, c, "/leagues", params("search", query))
}

func (c *Client) GetTeamsByLeague(ctx context.Context, leagueID int64, season int) (*apimodel.TeamResponse, error) {
	return getEnvelope[apimodel.TeamData](ctx, c, "/teams", params("league", itoa(leagueID), "season", strconv.Itoa(season)))
}

func (c *Client) GetTeamByID(ctx context.Context, teamID int64) (*apimodel.TeamResponse, error) {
	return getEnvelope[apimodel.TeamData](ctx, c, "/teams", params("id", itoa(teamID)))
}

func (c *Client) SearchTeams(ctx context.Context, name string) (*apimodel.TeamResponse, error) {
	return getEnvelope[apimodel.TeamData](ctx, c, "/teams", params("search", name))
}

func (c *Client) GetPlayersByTeam(ctx context.Context, teamID int64, season int) (*apimodel.PlayerResponse, error) {
	return getEnvelope[apimodel.PlayerData](ctx, c, "/players", params("team", itoa(teamID), "season", strconv.Itoa(season)))
}

func (c *Client) GetPlayerByID(ctx context.Context, playerID int64, season int) (*apimodel.PlayerResponse, error) {
	return getEnvelope[apimodel.PlayerData](ctx, c, "/players", params("id", itoa(playerID), "season", strconv.Itoa(season)))
}

func (c *Client) SearchPlayers(ctx context.Context, name string, leagueID int64, season int) (*apimodel.PlayerResponse, error) {
	return getEnvelope[apimodel.PlayerData](ctx, c, "/players", params(
		"search", name,
		"league", itoa(leagueID),
		"season", strconv.Itoa(season),
	))
}

func (c *Client) GetTopScorers(ctx context.Context, leagueID int64, season int) (*apimodel.PlayerResponse, error) {
	return getEnvelope[apimodel.PlayerData](ctx, c, "/players/topscorers", params("league", itoa(leagueID), "season", strconv.Itoa(season)))
}

func (c *Client) GetTeamSquad(ctx context.Context, teamID int64) (*apimodel.SquadResponse, error) {
	return getEnvelope[apimodel.TeamSquad](ctx, c, "/players/squads", params("team", itoa(teamID)))
}

func (c *Client) GetStandings(ctx context.Context, leagueID int64, season int) (*apimodel.StandingsResponse, error) {
	return getEnvelope[apimodel.StandingsData](ctx, c, "/standings", params("league", itoa(leagueID), "season", strconv.Itoa(season)))
}

func (c *Client) GetFixturesByLeague(ctx context.Context, leagueID int64, season int) (*apimodel.FixtureResponse, error) {
	return getEnvelope[apimodel.FixtureData](ctx, c, "/fixtures", params("league", itoa(leagueID), "season", strconv.Itoa(season)))
}

func (c *Client) GetLiveFixtures(ctx context.Context) (*apimodel.FixtureResponse, error) {
	return getEnvelope[apimodel.FixtureData](ctx, c, "/fixtures", params("live", "all"))
}

// GetFixturesByDate expects date as YYYY-MM-DD.
func (c *Client) GetFixturesByDate(ctx context.Context, date string) (*apimodel.FixtureResponse, error) {
	return getEnvelope[apimodel.FixtureData](ctx, c, "/fixtures", params("date", date))
}

func (c *Client) GetFixturesByLeagueAndDate(ctx context.Context, leagueID int64, season int, date string) (*apimodel.FixtureResponse, error) {
	return getEnvelope[apimodel.FixtureData](ctx, c, "/fixtures", params(
		"league", itoa(leagueID),
		"season", strconv.Itoa(season),
		"date", date,
	))
}

func (c *Client) GetFixturesByTeam(ctx context.Context, teamID int64, season int) (*apimodel.FixtureResponse, error) {
	return getEnvelope[apimodel.FixtureData](ctx, c, "/fixtures", params("team", itoa(teamID), "season", strconv.Itoa(season)))
}

func (c *Client) GetFixturesByRound(ctx context.Context, leagueID int64, season int, round string) (*apimodel.FixtureResponse, error) {
	return getEnvelope[apimodel.FixtureData](ctx, c, "/fixtures", params(
		"league", itoa(leagueID),
		"season", strconv.Itoa(season),
		"round", round,
	))
}

func (c *Client) GetFixtureByID(ctx context.Context, fixtureID int64) (*apimodel.FixtureResponse, error) {
	return getEnvelope[apimodel.FixtureData](ctx, c, "/fixtures", params("id", itoa(fixtureID)))
}

func (c *Client) GetFixtureEvents(ctx context.Context, fixtureID int64) (*apimodel.FixtureEventsResponse, error) {
	return getEnvelope[apimodel.FixtureEvent](ctx, c, "/fixtures/events", params("fixture", itoa(fixtureID)))
}

func (c *Client) GetFixtureStatistics(ctx context.Context, fixtureID int64) (*apimodel.FixtureStatisticsResponse, error) {
	return getEnvelope[apimodel.TeamStatistics](ctx, c, "/fixtures/statistics", params("fixture", itoa(fixtureID)))
}

// GetLatestRound returns every fixture of the most recently completed round.
// The envelope is empty when nothing in the season has finished yet.
func (c *Client) GetLatestRound(ctx context.Context, leagueID int64, season int) (*apimodel.FixtureResponse, error) {
	all, err := c.GetFixturesByLeague(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}

	round, matches, ok := apimodel.LatestCompletedRound(all.Response)
	out := apimodel.NewEnvelope(all.Get, matches)
	out.Parameters = all.Parameters
	out.Errors = all.Errors
	if !ok {
		c.logger.DebugContext(ctx, "no completed round yet", "league_id", leagueID, "season", season)
		return out, nil
	}

	c.logger.DebugContext(ctx, "resolved latest completed round", "league_id", leagueID, "season", season, "round", round, "fixtures", len(matches))
	return out, nil
}

// GetLatestAvailableDate walks back from today one day at a time and returns
// the first date with fixtures. Today is returned when the whole window is
// empty, so callers must not read it as a confirmed match day.
func (c *Client) GetLatestAvailableDate(ctx context.Context, leagueID int64, season int) (string, error) {
	dates := apimodel.LookbackDates(c.now(), apimodel.LatestDateLookbackDays)
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := c.GetFixturesByLeagueAndDate(ctx, leagueID, season, date)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			c.logger.WarnContext(ctx, "probe fixtures by date failed", "league_id", leagueID, "season", season, "date", date, "error", err)
			continue
		}
		if !resp.IsEmpty() {
			return date, nil
		}
	}

	return dates[0], nil
}
