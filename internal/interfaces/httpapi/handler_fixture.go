package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
	"github.com/riskibarqy/football-cache/internal/usecase"
)

// Fixture routes pass straight through to the upstream.

func (h *Handler) ListFixturesByLeague(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.FixtureResponse]{
		op:   "ListFixturesByLeague",
		bind: h.queryIDSeason("league"),
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.FixtureResponse, error) {
			return h.football.GetFixturesByLeague(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) ListLiveFixtures(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[noParams, *apimodel.FixtureResponse]{
		op:   "ListLiveFixtures",
		bind: bindNothing,
		call: func(ctx context.Context, _ noParams) (*apimodel.FixtureResponse, error) {
			return h.football.GetLiveFixtures(ctx)
		},
	})(w, r)
}

func (h *Handler) ListFixturesByDate(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[dateRequest, *apimodel.FixtureResponse]{
		op: "ListFixturesByDate",
		bind: func(r *http.Request) (dateRequest, error) {
			req := dateRequest{Date: strings.TrimSpace(r.PathValue("date"))}
			return req, h.validateRequest(r.Context(), req)
		},
		call: func(ctx context.Context, req dateRequest) (*apimodel.FixtureResponse, error) {
			return h.football.GetFixturesByDate(ctx, req.Date)
		},
	})(w, r)
}

func (h *Handler) ListFixturesByTeam(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.FixtureResponse]{
		op:   "ListFixturesByTeam",
		bind: h.pathIDSeason("teamID"),
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.FixtureResponse, error) {
			return h.football.GetFixturesByTeam(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) ListFixturesByRound(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[roundRequest, *apimodel.FixtureResponse]{
		op:   "ListFixturesByRound",
		bind: h.bindRound,
		call: func(ctx context.Context, req roundRequest) (*apimodel.FixtureResponse, error) {
			return h.football.GetFixturesByRound(ctx, req.LeagueID, req.Season, req.Round)
		},
	})(w, r)
}

func (h *Handler) GetLatestRound(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, *apimodel.FixtureResponse]{
		op:   "GetLatestRound",
		bind: h.queryIDSeason("league"),
		call: func(ctx context.Context, req idSeasonRequest) (*apimodel.FixtureResponse, error) {
			return h.football.GetLatestRound(ctx, req.ID, req.Season)
		},
	})(w, r)
}

func (h *Handler) GetLatestFixtureDate(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idSeasonRequest, latestDateDTO]{
		op:   "GetLatestFixtureDate",
		bind: h.queryIDSeason("league"),
		call: func(ctx context.Context, req idSeasonRequest) (latestDateDTO, error) {
			date, err := h.football.GetLatestAvailableDate(ctx, req.ID, req.Season)
			return latestDateDTO{Date: date}, err
		},
	})(w, r)
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idRequest, *apimodel.FixtureResponse]{
		op:   "GetFixture",
		bind: h.pathID("fixtureID"),
		call: func(ctx context.Context, req idRequest) (*apimodel.FixtureResponse, error) {
			return h.football.GetFixtureByID(ctx, req.ID)
		},
	})(w, r)
}

func (h *Handler) GetFixtureResource(w http.ResponseWriter, r *http.Request) {
	switch resource := r.PathValue("resource"); resource {
	case "events":
		h.ListFixtureEvents(w, r)
	case "statistics":
		h.ListFixtureStatistics(w, r)
	default:
		writeError(r.Context(), w, fmt.Errorf("%w: unknown fixture resource %q", usecase.ErrNotFound, resource))
	}
}

func (h *Handler) ListFixtureEvents(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idRequest, *apimodel.FixtureEventsResponse]{
		op:   "ListFixtureEvents",
		bind: h.pathID("fixtureID"),
		call: func(ctx context.Context, req idRequest) (*apimodel.FixtureEventsResponse, error) {
			return h.football.GetFixtureEvents(ctx, req.ID)
		},
	})(w, r)
}

func (h *Handler) ListFixtureStatistics(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[idRequest, *apimodel.FixtureStatisticsResponse]{
		op:   "ListFixtureStatistics",
		bind: h.pathID("fixtureID"),
		call: func(ctx context.Context, req idRequest) (*apimodel.FixtureStatisticsResponse, error) {
			return h.football.GetFixtureStatistics(ctx, req.ID)
		},
	})(w, r)
}

func (h *Handler) bindRound(r *http.Request) (roundRequest, error) {
	query := r.URL.Query()
	leagueID, err := parseInt64Param("league", query.Get("league"))
	if err != nil {
		return roundRequest{}, err
	}
	season, err := parseIntParam("season", query.Get("season"))
	if err != nil {
		return roundRequest{}, err
	}

	req := roundRequest{LeagueID: leagueID, Season: season, Round: strings.TrimSpace(query.Get("round"))}
	return req, h.validateRequest(r.Context(), req)
}
