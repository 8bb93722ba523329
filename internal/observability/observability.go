// Package observability owns the process-wide tracing and profiling hooks.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/football-cache/internal/config"
	"github.com/riskibarqy/football-cache/internal/platform/logging"
)

// Runtime holds the stop hooks of everything Start brought up.
type Runtime struct {
	stops  []namedStop
	logger *logging.Logger
}

type namedStop struct {
	name string
	stop func(context.Context) error
}

// Start brings up Uptrace tracing, Pyroscope profiling and the pprof
// listener as configured. On error, whatever already started is stopped.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{"uptrace", initUptrace},
		{"pyroscope", initPyroscope},
		{"pprof", startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, logger)
		if err != nil {
			_ = rt.Shutdown(ctx)
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		if stop != nil {
			rt.stops = append(rt.stops, namedStop{name: step.name, stop: stop})
		}
	}
	return rt, nil
}

// Shutdown stops in reverse start order so the tracer flushes last.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	for i := len(r.stops) - 1; i >= 0; i-- {
		s := r.stops[i]
		if err := s.stop(ctx); err != nil {
			r.logger.Warn("observability shutdown failed", "component", s.name, "error", err)
			errs = append(errs, fmt.Errorf("stop %s: %w", s.name, err))
		}
	}
	r.stops = nil
	return errors.Join(errs...)
}
