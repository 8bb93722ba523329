package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-cache/internal/platform/logging"
)

const (
	WarmupKindStandings = "standings"
	WarmupKindTeams     = "teams"

	warmupStatusSuccess = "success"
	warmupStatusFailed  = "failed"

	defaultWarmupWorkers = 4
)

// WarmupTarget is one league season to prefetch.
type WarmupTarget struct {
	LeagueID int64 `json:"league_id"`
	Season   int   `json:"season"`
}

type WarmupInput struct {
	Targets []WarmupTarget
	// Kinds defaults to standings and teams.
	Kinds      []string
	MaxWorkers int
}

type WarmupResult struct {
	TaskCount    int                `json:"task_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	WorkerCount  int                `json:"worker_count"`
	Tasks        []WarmupTaskResult `json:"tasks"`
}

type WarmupTaskResult struct {
	LeagueID   int64  `json:"league_id"`
	Season     int    `json:"season"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type warmupTask struct {
	target WarmupTarget
	kind   string
}

// WarmupService prefetches league seasons through the façade so the
// persistent cache is populated before traffic arrives.
type WarmupService struct {
	football       *FootballService
	defaultTargets []WarmupTarget
	defaultWorkers int
	logger         *logging.Logger
}

func NewWarmupService(football *FootballService, defaultTargets []WarmupTarget, defaultWorkers int, logger *logging.Logger) *WarmupService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultWorkers <= 0 {
		defaultWorkers = defaultWarmupWorkers
	}

	return &WarmupService{
		football:       football,
		defaultTargets: append([]WarmupTarget(nil), defaultTargets...),
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

// Run executes every (target, kind) pair on a bounded worker pool. A failed
// task is reported in the result and does not stop the others.
func (s *WarmupService) Run(ctx context.Context, input WarmupInput) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmupService.Run")
	defer span.End()

	targets := input.Targets
	if len(targets) == 0 {
		targets = s.defaultTargets
	}
	for _, target := range targets {
		if target.LeagueID <= 0 {
			return WarmupResult{}, fmt.Errorf("%w: warmup league id must be > 0", ErrInvalidInput)
		}
	}

	kinds, err := normalizeWarmupKinds(input.Kinds)
	if err != nil {
		return WarmupResult{}, err
	}

	tasks := make([]warmupTask, 0, len(targets)*len(kinds))
	for _, target := range targets {
		for _, kind := range kinds {
			tasks = append(tasks, warmupTask{target: target, kind: kind})
		}
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.defaultWorkers
	}
	workerCount = min(workerCount, max(len(tasks), 1))

	result := WarmupResult{
		TaskCount:   len(tasks),
		WorkerCount: workerCount,
		Tasks:       make([]WarmupTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	results := make(chan WarmupTaskResult, len(tasks))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	var submitErr error
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WarmupTaskResult{
				LeagueID: task.target.LeagueID,
				Season:   task.target.Season,
				Kind:     task.kind,
				Status:   warmupStatusSuccess,
			}

			records, runErr := s.runTask(ctx, task)
			row.Records = records
			row.DurationMs = time.Since(start).Milliseconds()
			if runErr != nil {
				row.Status = warmupStatusFailed
				row.Message = runErr.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "cache warmup task failed", "league_id", task.target.LeagueID, "season", task.target.Season, "kind", task.kind, "error", runErr)
			} else {
				successCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit task to worker pool: %w", err)
			break
		}
	}

	workers.Wait()
	close(results)
	if submitErr != nil {
		return WarmupResult{}, submitErr
	}

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].LeagueID != result.Tasks[j].LeagueID {
			return result.Tasks[i].LeagueID < result.Tasks[j].LeagueID
		}
		if result.Tasks[i].Season != result.Tasks[j].Season {
			return result.Tasks[i].Season < result.Tasks[j].Season
		}
		return result.Tasks[i].Kind < result.Tasks[j].Kind
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "cache warmup finished", "tasks", result.TaskCount, "success", result.SuccessCount, "failed", result.FailedCount)
	return result, nil
}

func (s *WarmupService) runTask(ctx context.Context, task warmupTask) (int, error) {
	switch task.kind {
	case WarmupKindStandings:
		resp, err := s.football.GetStandings(ctx, task.target.LeagueID, task.target.Season)
		if err != nil {
			return 0, err
		}
		return resp.Len(), nil
	case WarmupKindTeams:
		resp, err := s.football.GetTeamsByLeague(ctx, task.target.LeagueID, task.target.Season)
		if err != nil {
			return 0, err
		}
		return resp.Len(), nil
	default:
		return 0, fmt.Errorf("%w: unknown warmup kind %q", ErrInvalidInput, task.kind)
	}
}

func normalizeWarmupKinds(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return []string{WarmupKindStandings, WarmupKindTeams}, nil
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, kind := range raw {
		kind = strings.ToLower(strings.TrimSpace(kind))
		switch kind {
		case WarmupKindStandings, WarmupKindTeams:
		default:
			return nil, fmt.Errorf("%w: unknown warmup kind %q", ErrInvalidInput, kind)
		}
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		out = append(out, kind)
	}
	return out, nil
}
