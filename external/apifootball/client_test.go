package apifootball

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
	"github.com/riskibarqy/football-cache/internal/platform/resilience"
	"github.com/riskibarqy/football-cache/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*ClientConfig)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		APIKey:     "secret-key",
		APIHost:    "v3.football.api-sports.io",
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	return NewClient(cfg)
}

func writeEnvelope(w http.ResponseWriter, get string, response any, results int) {
	w.Header().Set("Content-Type", "application/json")
	_ = jsoniter.NewEncoder(w).Encode(map[string]any{
		"get":        get,
		"parameters": map[string]any{},
		"errors":     []any{},
		"results":    results,
		"paging":     map[string]any{"current": 1, "total": 1},
		"response":   response,
	})
}

func TestClient_GetTeamsByLeagueSendsHeadersAndQuery(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("league"); got != "39" {
			t.Errorf("unexpected league query: %q", got)
		}
		if got := r.URL.Query().Get("season"); got != "2024" {
			t.Errorf("unexpected season query: %q", got)
		}
		if got := r.Header.Get("x-rapidapi-key"); got != "secret-key" {
			t.Errorf("unexpected api key header: %q", got)
		}
		if got := r.Header.Get("x-rapidapi-host"); got != "v3.football.api-sports.io" {
			t.Errorf("unexpected api host header: %q", got)
		}
		writeEnvelope(w, "teams", []map[string]any{
			{"team": map[string]any{"id": 33, "name": "Manchester United", "founded": 1878}, "venue": map[string]any{"name": "Old Trafford", "capacity": 76212}},
		}, 1)
	})

	resp, err := client.GetTeamsByLeague(context.Background(), 39, 2024)
	if err != nil {
		t.Fatalf("get teams: %v", err)
	}
	if resp.Len() != 1 {
		t.Fatalf("unexpected team count: got=%d want=1", resp.Len())
	}
	item := resp.Response[0]
	if item.Team.ID != 33 || item.Team.Founded == nil || *item.Team.Founded != 1878 {
		t.Fatalf("unexpected team payload: %+v", item.Team)
	}
	if item.Venue.Capacity == nil || *item.Venue.Capacity != 76212 {
		t.Fatalf("unexpected venue payload: %+v", item.Venue)
	}
}

func TestClient_NullResponseDecodesToEmpty(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, "standings", nil, 0)
	})

	resp, err := client.GetStandings(context.Background(), 39, 2024)
	if err != nil {
		t.Fatalf("get standings: %v", err)
	}
	if resp.Response == nil || !resp.IsEmpty() {
		t.Fatalf("expected empty non-nil response slice, got %#v", resp.Response)
	}
}

func TestClient_ServerErrorIsUpstreamError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	_, err := client.GetLeagues(context.Background())
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "status=500") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestClient_RedactsAPIKeyFromTransportErrors(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{
		BaseURL:        "http://127.0.0.1:1/secret-key",
		APIKey:         "secret-key",
		ConnectTimeout: 200 * time.Millisecond,
		ReadTimeout:    200 * time.Millisecond,
	})

	_, err := client.GetLeagues(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("api key leaked in error: %v", err)
	}
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	for range 2 {
		if _, err := client.GetLiveFixtures(context.Background()); !errors.Is(err, ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	}

	_, err := client.GetLiveFixtures(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) || !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected open circuit error, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected open circuit to skip the request, hits=%d", got)
	}
}

func TestClient_ClientErrorDoesNotTripCircuit(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute}
	})

	for range 3 {
		if _, err := client.GetLeagues(context.Background()); !errors.Is(err, ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected every request to reach the server, hits=%d", got)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeEnvelope(w, "leagues", []map[string]any{{"league": map[string]any{"id": 39, "name": "Premier League"}}}, 1)
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 1
	})

	resp, err := client.GetLeagues(context.Background())
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if resp.Len() != 1 || hits.Load() != 2 {
		t.Fatalf("unexpected retry outcome: len=%d hits=%d", resp.Len(), hits.Load())
	}
}

func TestClient_GetLatestRound(t *testing.T) {
	t.Parallel()

	fixture := func(id, ts int64, round, status string) map[string]any {
		return map[string]any{
			"fixture": map[string]any{"id": id, "timestamp": ts, "status": map[string]any{"short": status}},
			"league":  map[string]any{"id": 39, "season": 2024, "round": round},
		}
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("league") != "39" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		writeEnvelope(w, "fixtures", []map[string]any{
			fixture(1, 1000, "Regular Season - 1", apimodel.StatusShortFinished),
			fixture(2, 1000, "Regular Season - 1", apimodel.StatusShortFinished),
			fixture(3, 2000, "Regular Season - 2", apimodel.StatusShortFinished),
			fixture(4, 2100, "Regular Season - 2", apimodel.StatusShortFinished),
			fixture(5, 3000, "Regular Season - 3", "NS"),
			fixture(6, 2200, "Regular Season - 2", "PST"),
		}, 6)
	})

	resp, err := client.GetLatestRound(context.Background(), 39, 2024)
	if err != nil {
		t.Fatalf("get latest round: %v", err)
	}
	if resp.Len() != 2 || resp.Results != 2 {
		t.Fatalf("unexpected latest round size: len=%d results=%d", resp.Len(), resp.Results)
	}
	for _, item := range resp.Response {
		if item.League.Round != "Regular Season - 2" {
			t.Fatalf("unexpected round in result: %q", item.League.Round)
		}
	}
}

func TestClient_GetLatestAvailableDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.August, 20, 15, 0, 0, 0, time.UTC)

	t.Run("returns newest date with fixtures", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("date") == "2024-08-18" {
				writeEnvelope(w, "fixtures", []map[string]any{{"fixture": map[string]any{"id": 10}}}, 1)
				return
			}
			writeEnvelope(w, "fixtures", []any{}, 0)
		}, func(cfg *ClientConfig) {
			cfg.Now = func() time.Time { return now }
		})

		date, err := client.GetLatestAvailableDate(context.Background(), 39, 2024)
		if err != nil {
			t.Fatalf("latest date: %v", err)
		}
		if date != "2024-08-18" {
			t.Fatalf("unexpected date: got=%s want=2024-08-18", date)
		}
	})

	t.Run("falls back to today when window is empty", func(t *testing.T) {
		var probes atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			probes.Add(1)
			writeEnvelope(w, "fixtures", []any{}, 0)
		}, func(cfg *ClientConfig) {
			cfg.Now = func() time.Time { return now }
		})

		date, err := client.GetLatestAvailableDate(context.Background(), 39, 2024)
		if err != nil {
			t.Fatalf("latest date: %v", err)
		}
		if date != "2024-08-20" {
			t.Fatalf("unexpected fallback date: %s", date)
		}
		if got := probes.Load(); got != apimodel.LatestDateLookbackDays {
			t.Fatalf("expected %d probes, got=%d", apimodel.LatestDateLookbackDays, got)
		}
	})
}

func TestClient_CurrentSeasonUsesClock(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Now: func() time.Time {
		return time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	}})
	if got := client.CurrentSeason(); got != 2024 {
		t.Fatalf("unexpected season: got=%d want=2024", got)
	}
	if client.IsConfigured() {
		t.Fatalf("expected client without key to report unconfigured")
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText(" dial https://host/?key=abc123 failed ", "abc123")
	if got != "dial https://host/?key=REDACTED failed" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
}
