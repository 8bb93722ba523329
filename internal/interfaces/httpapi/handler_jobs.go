package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/football-cache/internal/usecase"
)

type warmupTargetRequest struct {
	LeagueID int64 `json:"league_id" validate:"gt=0"`
	Season   int   `json:"season" validate:"omitempty,gte=1900,lte=2100"`
}

// warmupRequest is the optional body of POST /v1/internal/cache/warmup.
// Omitted targets fall back to the configured APP_WARMUP_TARGETS.
type warmupRequest struct {
	Targets    []warmupTargetRequest `json:"targets" validate:"omitempty,max=50,dive"`
	Kinds      []string              `json:"kinds" validate:"omitempty,dive,oneof=standings teams"`
	MaxWorkers int                   `json:"max_workers" validate:"gte=0,lte=32"`
}

func (req warmupRequest) input() usecase.WarmupInput {
	in := usecase.WarmupInput{Kinds: req.Kinds, MaxWorkers: req.MaxWorkers}
	for _, t := range req.Targets {
		in.Targets = append(in.Targets, usecase.WarmupTarget{LeagueID: t.LeagueID, Season: t.Season})
	}
	return in
}

func (h *Handler) RunRefreshLeaguesJob(w http.ResponseWriter, r *http.Request) {
	serve(h, endpoint[noParams, usecase.LeagueRefreshResult]{
		op:   "RunRefreshLeaguesJob",
		bind: bindNothing,
		call: func(ctx context.Context, _ noParams) (usecase.LeagueRefreshResult, error) {
			return h.football.ForceRefreshLeagues(ctx)
		},
	})(w, r)
}

func (h *Handler) RunWarmupJob(w http.ResponseWriter, r *http.Request) {
	if h.warmup == nil {
		writeError(r.Context(), w, fmt.Errorf("%w: cache warmup is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	serve(h, endpoint[warmupRequest, usecase.WarmupResult]{
		op:   "RunWarmupJob",
		bind: h.bindWarmup,
		call: func(ctx context.Context, req warmupRequest) (usecase.WarmupResult, error) {
			return h.warmup.Run(ctx, req.input())
		},
	})(w, r)
}

// bindWarmup treats an empty body as a request for the default targets.
func (h *Handler) bindWarmup(r *http.Request) (warmupRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req warmupRequest
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return warmupRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, h.validateRequest(r.Context(), req)
}
