package httpapi

import (
	"context"
	"net/http"
	"strings"

	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[noParams, *apimodel.LeagueResponse]{
		op:   "ListLeagues",
		bind: bindNothing,
		call: func(ctx context.Context, _ noParams) (*apimodel.LeagueResponse, error) {
			return h.football.GetLeagues(ctx)
		},
	})(w, r)
}

func (h *Handler) SearchLeagues(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[searchRequest, *apimodel.LeagueResponse]{
		op:   "SearchLeagues",
		bind: h.searchTerm("q"),
		call: func(ctx context.Context, req searchRequest) (*apimodel.LeagueResponse, error) {
			return h.football.SearchLeagues(ctx, req.Term)
		},
	})(w, r)
}

func (h *Handler) ListLeaguesByCountry(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[countryRequest, *apimodel.LeagueResponse]{
		op: "ListLeaguesByCountry",
		bind: func(r *http.Request) (countryRequest, error) {
			req := countryRequest{Country: strings.TrimSpace(r.PathValue("country"))}
			return req, h.validateRequest(r.Context(), req)
		},
		call: func(ctx context.Context, req countryRequest) (*apimodel.LeagueResponse, error) {
			return h.football.GetLeaguesByCountry(ctx, req.Country)
		},
	})(w, r)
}

func (h *Handler) ListLeaguesByTeam(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.LeagueResponse]{
		op:   "ListLeaguesByTeam",
		bind: h.pathIDSeason("teamID"),
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.LeagueResponse, error) {
			return h.football.GetLeaguesByTeam(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idRequest, *apimodel.LeagueResponse]{
		op:     "GetLeague",
		bind:   h.pathID("leagueID"),
		entity: "league",
		call: func(ctx context.Context, req idRequest) (*apimodel.LeagueResponse, error) {
			return h.football.GetLeagueByID(ctx, req.ID)
		},
	})(w, r)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.StandingsResponse]{
		op:     "GetStandings",
		bind:   h.queryIDSeason("league"),
		entity: "standings",
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.StandingsResponse, error) {
			return h.football.GetStandings(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.TeamResponse]{
		op:   "ListTeamsByLeague",
		bind: h.queryIDSeason("league"),
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.TeamResponse, error) {
			return h.football.GetTeamsByLeague(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[searchRequest, *apimodel.TeamResponse]{
		op:   "SearchTeams",
		bind: h.searchTerm("name"),
		call: func(ctx context.Context, req searchRequest) (*apimodel.TeamResponse, error) {
			return h.football.SearchTeams(ctx, req.Term)
		},
	})(w, r)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idRequest, *apimodel.TeamResponse]{
		op:     "GetTeam",
		bind:   h.pathID("teamID"),
		entity: "team",
		call: func(ctx context.Context, req idRequest) (*apimodel.TeamResponse, error) {
			return h.football.GetTeamByID(ctx, req.ID)
		},
	})(w, r)
}

func (h *Handler) GetTeamSquad(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idRequest, *apimodel.SquadResponse]{
		op:     "GetTeamSquad",
		bind:   h.pathID("teamID"),
		entity: "squad",
		call: func(ctx context.Context, req idRequest) (*apimodel.SquadResponse, error) {
			return h.football.GetTeamSquad(ctx, req.ID)
		},
	})(w, r)
}
