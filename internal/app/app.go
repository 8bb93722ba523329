package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-cache/external/apifootball"
	"github.com/riskibarqy/football-cache/internal/config"
	cacherepo "github.com/riskibarqy/football-cache/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-cache/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-cache/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-cache/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/football-cache/internal/platform/cache"
	"github.com/riskibarqy/football-cache/internal/platform/logging"
	"github.com/riskibarqy/football-cache/internal/platform/resilience"
	"github.com/riskibarqy/football-cache/internal/usecase"
)

// App holds the wired HTTP server and the resources it owns.
type App struct {
	Server *http.Server
	Warmup *usecase.WarmupService

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := newCacheRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	client := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:           cfg.APIFootballBaseURL,
		APIKey:            cfg.APIFootballKey,
		APIHost:           cfg.APIFootballHost,
		ConnectTimeout:    cfg.APIFootballConnectTimeout,
		ReadTimeout:       cfg.APIFootballReadTimeout,
		MaxRetries:        cfg.APIFootballMaxRetries,
		RequestsPerMinute: cfg.APIFootballRequestsPerMinute,
		Logger:            logger.Named("apifootball"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
		},
	})
	if !client.IsConfigured() {
		logger.Warn("API_FOOTBALL_KEY is empty, upstream calls will be rejected")
	}

	cacheSvc := usecase.NewFootballCacheService(repos, logger.Named("cache"))
	footballSvc := usecase.NewFootballService(client, cacheSvc, logger.Named("football"))
	warmupSvc := usecase.NewWarmupService(footballSvc, warmupTargets(cfg.CacheWarmupTargets), cfg.CacheWarmupWorkers, logger.Named("warmup"))

	handler := httpapi.NewHandler(footballSvc, warmupSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Warmup: warmupSvc,
		db:     db,
	}, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newCacheRepositories(cfg config.Config, logger *logging.Logger) (usecase.FootballCacheRepositories, *sqlx.DB, error) {
	var (
		repos usecase.FootballCacheRepositories
		db    *sqlx.DB
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		repos = usecase.FootballCacheRepositories{
			Leagues:   memory.NewLeagueRepository(),
			Teams:     memory.NewTeamRepository(),
			Players:   memory.NewPlayerRepository(),
			Squads:    memory.NewSquadRepository(),
			Standings: memory.NewStandingsRepository(),
		}
		logger.Info("cache store selected", "driver", cfg.StoreDriver)
	default:
		var err error
		db, err = openDB(cfg)
		if err != nil {
			return usecase.FootballCacheRepositories{}, nil, err
		}
		repos = usecase.FootballCacheRepositories{
			Leagues:   postgres.NewLeagueRepository(db),
			Teams:     postgres.NewTeamRepository(db),
			Players:   postgres.NewPlayerRepository(db),
			Squads:    postgres.NewSquadRepository(db),
			Standings: postgres.NewStandingsRepository(db),
		}
		logger.Info("cache store selected", "driver", cfg.StoreDriver, "db_name", dbNameFromURL(cfg.DBURL))
	}

	if !cfg.CacheEnabled {
		return repos, db, nil
	}

	store := basecache.NewStore(cfg.CacheTTL)
	return usecase.FootballCacheRepositories{
		Leagues:   cacherepo.NewLeagueRepository(repos.Leagues, store),
		Teams:     cacherepo.NewTeamRepository(repos.Teams, store),
		Players:   cacherepo.NewPlayerRepository(repos.Players, store),
		Squads:    cacherepo.NewSquadRepository(repos.Squads, store),
		Standings: cacherepo.NewStandingsRepository(repos.Standings, store),
		Memory:    store,
	}, db, nil
}

func warmupTargets(in []config.WarmupTarget) []usecase.WarmupTarget {
	out := make([]usecase.WarmupTarget, 0, len(in))
	for _, target := range in {
		out = append(out, usecase.WarmupTarget{LeagueID: target.LeagueID, Season: target.Season})
	}
	return out
}
