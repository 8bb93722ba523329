package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/football-cache/internal/usecase"
)

type emptier interface {
	IsEmpty() bool
}

// endpoint describes one read route: how to bind its parameters and which
// service call answers it.
type endpoint[Req, Resp any] struct {
	op   string
	bind func(*http.Request) (Req, error)
	call func(context.Context, Req) (Resp, error)
	// entity names a single-resource lookup; an empty answer becomes 404.
	entity string
}

func serve[Req, Resp any](h *Handler, e endpoint[Req, Resp]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler."+e.op)
		defer span.End()

		req, err := e.bind(r.WithContext(ctx))
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		resp, err := e.call(ctx, req)
		if err != nil {
			h.logger.WarnContext(ctx, "request failed", "op", e.op, "params", req, "error", err)
			writeError(ctx, w, err)
			return
		}

		if e.entity != "" {
			if v, ok := any(resp).(emptier); ok && v.IsEmpty() {
				writeError(ctx, w, fmt.Errorf("%w: %s", usecase.ErrNotFound, e.entity))
				return
			}
		}
		writeSuccess(ctx, w, http.StatusOK, resp)
	}
}

type noParams struct{}

func bindNothing(*http.Request) (noParams, error) {
	return noParams{}, nil
}
