package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/football-cache/internal/config"
	"github.com/riskibarqy/football-cache/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                         config.EnvDev,
		ServiceName:                    "football-cache-api",
		HTTPAddr:                       ":0",
		ReadTimeout:                    time.Second,
		WriteTimeout:                   time.Second,
		StoreDriver:                    config.StoreDriverMemory,
		CacheEnabled:                   true,
		CacheTTL:                       time.Minute,
		CORSAllowedOrigins:             []string{"*"},
		APIFootballBaseURL:             "http://127.0.0.1:1",
		APIFootballConnectTimeout:      time.Second,
		APIFootballReadTimeout:         time.Second,
		APIFootballCircuitEnabled:      true,
		APIFootballCircuitFailureCount: 5,
		APIFootballCircuitOpenTimeout:  time.Second,
		CacheWarmupTargets:             []config.WarmupTarget{{LeagueID: 39, Season: 2024}},
		CacheWarmupWorkers:             2,
	}
}

func TestNew_MemoryStoreServesHealthz(t *testing.T) {
	application, err := New(memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { _ = application.Close() })

	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/football/cache/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for cache stats, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"memory"`) {
		t.Fatalf("expected in-process cache stats in body: %s", rec.Body.String())
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestWarmupTargets(t *testing.T) {
	got := warmupTargets([]config.WarmupTarget{{LeagueID: 39, Season: 2024}, {LeagueID: 140}})
	if len(got) != 2 || got[0].LeagueID != 39 || got[0].Season != 2024 || got[1].LeagueID != 140 {
		t.Fatalf("unexpected warmup targets: %+v", got)
	}
}
