package httpapi

import "net/http"

const footballPrefix = "/v1/football"

type route struct {
	pattern string
	handler http.HandlerFunc
}

// publicRoutes lists the read API. Literal segments such as /search are
// registered beside {id} wildcards; ServeMux prefers the more specific one.
func publicRoutes(h *Handler) []route {
	return []route{
		{"GET /healthz", h.Healthz},
		{"GET " + footballPrefix + "/status", h.GetStatus},
		{"GET " + footballPrefix + "/cache/stats", h.GetCacheStats},

		{"GET " + footballPrefix + "/leagues", h.ListLeagues},
		{"GET " + footballPrefix + "/leagues/search", h.SearchLeagues},
		{"GET " + footballPrefix + "/leagues/country/{country}", h.ListLeaguesByCountry},
		{"GET " + footballPrefix + "/leagues/team/{teamID}", h.ListLeaguesByTeam},
		{"GET " + footballPrefix + "/leagues/{leagueID}", h.GetLeague},
		{"GET " + footballPrefix + "/standings", h.GetStandings},

		{"GET " + footballPrefix + "/teams", h.ListTeamsByLeague},
		{"GET " + footballPrefix + "/teams/search", h.SearchTeams},
		{"GET " + footballPrefix + "/teams/{teamID}", h.GetTeam},
		{"GET " + footballPrefix + "/teams/{teamID}/squad", h.GetTeamSquad},

		{"GET " + footballPrefix + "/players", h.ListPlayersByTeam},
		{"GET " + footballPrefix + "/players/search", h.SearchPlayers},
		{"GET " + footballPrefix + "/players/topscorers", h.ListTopScorers},
		{"GET " + footballPrefix + "/players/{playerID}", h.GetPlayer},

		{"GET " + footballPrefix + "/fixtures", h.ListFixturesByLeague},
		{"GET " + footballPrefix + "/fixtures/live", h.ListLiveFixtures},
		{"GET " + footballPrefix + "/fixtures/date/{date}", h.ListFixturesByDate},
		{"GET " + footballPrefix + "/fixtures/team/{teamID}", h.ListFixturesByTeam},
		{"GET " + footballPrefix + "/fixtures/latest-round", h.GetLatestRound},
		{"GET " + footballPrefix + "/fixtures/round", h.ListFixturesByRound},
		{"GET " + footballPrefix + "/fixtures/latest-date", h.GetLatestFixtureDate},
		{"GET " + footballPrefix + "/fixtures/{fixtureID}", h.GetFixture},
		// A literal second segment would overlap team/{teamID} and date/{date}.
		{"GET " + footballPrefix + "/fixtures/{fixtureID}/{resource}", h.GetFixtureResource},
	}
}

func docsRoutes(h *Handler) []route {
	return []route{
		{"GET /openapi.yaml", h.OpenAPI},
		{"GET /docs", h.SwaggerUI},
		{"GET /docs/", h.SwaggerUI},
	}
}

func jobRoutes(h *Handler) []route {
	return []route{
		{"POST /v1/internal/cache/leagues/refresh", h.RunRefreshLeaguesJob},
		{"POST /v1/internal/cache/warmup", h.RunWarmupJob},
	}
}

func register(mux *http.ServeMux, routes []route, wrap func(http.Handler) http.Handler) {
	for _, rt := range routes {
		var next http.Handler = rt.handler
		if wrap != nil {
			next = wrap(next)
		}
		mux.Handle(rt.pattern, next)
	}
}
