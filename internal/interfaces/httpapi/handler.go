package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-cache/internal/platform/logging"
	"github.com/riskibarqy/football-cache/internal/usecase"
)

type Handler struct {
	football  *usecase.FootballService
	warmup    *usecase.WarmupService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(football *usecase.FootballService, warmup *usecase.WarmupService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		football:  football,
		warmup:    warmup,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, statusDTO{
		Configured:    h.football.IsConfigured(),
		CurrentSeason: h.football.CurrentSeason(),
	})
}

func (h *Handler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCacheStats")
	defer span.End()

	stats, err := h.football.CacheStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get cache stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type statusDTO struct {
	Configured    bool `json:"configured"`
	CurrentSeason int  `json:"current_season"`
}

type latestDateDTO struct {
	Date string `json:"date"`
}

// Query and path parameters are bound into these before validation. A zero
// season means the current season.

type idRequest struct {
	ID int64 `json:"id" validate:"gt=0"`
}

type idSeasonRequest struct {
	ID     int64 `json:"id" validate:"gt=0"`
	Season int   `json:"season,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

type searchRequest struct {
	Term string `json:"term" validate:"required,min=3,max=100"`
}

type playerSearchRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	LeagueID int64  `json:"league_id" validate:"gt=0"`
	Season   int    `json:"season,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

type countryRequest struct {
	Country string `json:"country" validate:"required,max=100"`
}

type dateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type roundRequest struct {
	LeagueID int64  `json:"league_id" validate:"gt=0"`
	Season   int    `json:"season,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Round    string `json:"round" validate:"required,max=100"`
}

func parseInt64Param(name, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	out, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return out, nil
}

func parseIntParam(name, raw string) (int, error) {
	out, err := parseInt64Param(name, raw)
	if err != nil {
		return 0, err
	}
	return int(out), nil
}

func (h *Handler) pathID(key string) func(*http.Request) (idRequest, error) {
	return func(r *http.Request) (idRequest, error) {
		id, err := parseInt64Param(key, r.PathValue(key))
		if err != nil {
			return idRequest{}, err
		}
		req := idRequest{ID: id}
		return req, h.validateRequest(r.Context(), req)
	}
}

// pathIDSeason and queryIDSeason read the id from a path segment or a query
// parameter. Season always comes from ?season=.
func (h *Handler) pathIDSeason(key string) func(*http.Request) (idSeasonRequest, error) {
	return func(r *http.Request) (idSeasonRequest, error) {
		return h.bindIDSeason(r, key, r.PathValue(key))
	}
}

func (h *Handler) queryIDSeason(key string) func(*http.Request) (idSeasonRequest, error) {
	return func(r *http.Request) (idSeasonRequest, error) {
		return h.bindIDSeason(r, key, r.URL.Query().Get(key))
	}
}

func (h *Handler) bindIDSeason(r *http.Request, name, raw string) (idSeasonRequest, error) {
	id, err := parseInt64Param(name, raw)
	if err != nil {
		return idSeasonRequest{}, err
	}
	season, err := parseIntParam("season", r.URL.Query().Get("season"))
	if err != nil {
		return idSeasonRequest{}, err
	}
	req := idSeasonRequest{ID: id, Season: season}
	return req, h.validateRequest(r.Context(), req)
}

func (h *Handler) searchTerm(key string) func(*http.Request) (searchRequest, error) {
	return func(r *http.Request) (searchRequest, error) {
		req := searchRequest{Term: strings.TrimSpace(r.URL.Query().Get(key))}
		return req, h.validateRequest(r.Context(), req)
	}
}
