package httpapi

import (
	"context"
	"net/http"
	"strings"

	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
)

func (h *Handler) ListPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.PlayerResponse]{
		op:   "ListPlayersByTeam",
		bind: h.queryIDSeason("team"),
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.PlayerResponse, error) {
			return h.football.GetPlayersByTeam(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.PlayerResponse]{
		op:   "ListTopScorers",
		bind: h.queryIDSeason("league"),
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.PlayerResponse, error) {
			return h.football.GetTopScorers(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.PlayerResponse]{
		op:     "GetPlayer",
		bind:   h.pathIDSeason("playerID"),
		entity: "player",
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.PlayerResponse, error) {
			return h.football.GetPlayerByID(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[playerSearchRequest, *apimodel.PlayerResponse]{
		op:   "SearchPlayers",
		bind: h.bindPlayerSearch,
		call: func(ctx context.Context, req playerSearchRequest) (*apimodel.PlayerResponse, error) {
			return h.football.SearchPlayers(ctx, req.Name, req.LeagueID, req.Season)
		},
	})(w, r)
}

func (h *Handler) bindPlayerSearch(r *http.Request) (playerSearchRequest, error) {
	query := r.URL.Query()
	leagueID, err := parseInt64Param("league", query.Get("league"))
	if err != nil {
		return playerSearchRequest{}, err
	}
	season, err := parseIntParam("season", query.Get("season"))
	if err != nil {
		return playerSearchRequest{}, err
	}

	req := playerSearchRequest{
		Name:     strings.TrimSpace(query.Get("name")),
		LeagueID: leagueID,
		Season:   season,
	}
	return req, h.validateRequest(r.Context(), req)
}
