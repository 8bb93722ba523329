package usecase

import (
	"context"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
	"github.com/riskibarqy/football-cache/internal/domain/league"
	"github.com/riskibarqy/football-cache/internal/domain/player"
	"github.com/riskibarqy/football-cache/internal/domain/squad"
	"github.com/riskibarqy/football-cache/internal/domain/standings"
	"github.com/riskibarqy/football-cache/internal/domain/team"
	basecache "github.com/riskibarqy/football-cache/internal/platform/cache"
	"github.com/riskibarqy/football-cache/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// CacheStats counts the rows held per cached entity kind. Memory is set
// when the in-process layer is enabled.
type CacheStats struct {
	Leagues   int64                 `json:"leagues"`
	Teams     int64                 `json:"teams"`
	Players   int64                 `json:"players"`
	Standings int64                 `json:"standings"`
	Squads    int64                 `json:"squads"`
	Memory    *basecache.StoreStats `json:"memory,omitempty"`
}

// FootballCacheRepositories groups the persistent cache stores. Memory is
// the optional in-process layer the repositories are wrapped in.
type FootballCacheRepositories struct {
	Leagues   league.Repository
	Teams     team.Repository
	Players   player.Repository
	Squads    squad.Repository
	Standings standings.Repository
	Memory    *basecache.Store
}

// FootballCacheService converts between upstream envelopes and cached rows.
// Reads return nil when nothing is cached.
type FootballCacheService struct {
	leagueRepo    league.Repository
	teamRepo      team.Repository
	playerRepo    player.Repository
	squadRepo     squad.Repository
	standingsRepo standings.Repository
	memory        *basecache.Store
	logger        *logging.Logger
}

func NewFootballCacheService(repos FootballCacheRepositories, logger *logging.Logger) *FootballCacheService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FootballCacheService{
		leagueRepo:    repos.Leagues,
		teamRepo:      repos.Teams,
		playerRepo:    repos.Players,
		squadRepo:     repos.Squads,
		standingsRepo: repos.Standings,
		memory:        repos.Memory,
		logger:        logger,
	}
}

// Leagues.

// SaveLeagues stores leagues not cached yet and returns how many were inserted.
func (s *FootballCacheService) SaveLeagues(ctx context.Context, resp *apimodel.LeagueResponse) (int, error) {
	if resp.IsEmpty() {
		return 0, nil
	}

	inserted := 0
	var errs []error
	for _, item := range resp.Response {
		if item.League.ID <= 0 {
			continue
		}
		exists, err := s.leagueRepo.ExistsByAPIID(ctx, item.League.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("check league api_id=%d: %w", item.League.ID, err))
			continue
		}
		if exists {
			continue
		}

		raw, err := sonic.MarshalString(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode league api_id=%d: %w", item.League.ID, err))
			continue
		}
		ok, err := s.leagueRepo.Insert(ctx, leagueRow(item, raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("insert league api_id=%d: %w", item.League.ID, err))
			continue
		}
		if ok {
			inserted++
		}
	}

	s.logger.DebugContext(ctx, "leagues saved to cache", "received", len(resp.Response), "inserted", inserted)
	return inserted, errors.Join(errs...)
}

func (s *FootballCacheService) GetAllLeagues(ctx context.Context) (*apimodel.LeagueResponse, error) {
	rows, err := s.leagueRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cached leagues: %w", err)
	}
	return s.leagueEnvelope(ctx, rows), nil
}

func (s *FootballCacheService) GetLeagueByID(ctx context.Context, leagueID int64) (*apimodel.LeagueResponse, error) {
	row, found, err := s.leagueRepo.GetByAPIID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get cached league: %w", err)
	}
	if !found {
		return nil, nil
	}
	return s.leagueEnvelope(ctx, []league.League{row}), nil
}

func (s *FootballCacheService) GetLeaguesByCountry(ctx context.Context, country string) (*apimodel.LeagueResponse, error) {
	rows, err := s.leagueRepo.ListByCountry(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("list cached leagues by country: %w", err)
	}
	return s.leagueEnvelope(ctx, rows), nil
}

// SearchLeagues matches the query against league name or country name.
func (s *FootballCacheService) SearchLeagues(ctx context.Context, query string) (*apimodel.LeagueResponse, error) {
	rows, err := s.leagueRepo.SearchByNameOrCountry(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search cached leagues: %w", err)
	}
	return s.leagueEnvelope(ctx, rows), nil
}

// Teams.

// SaveTeams upserts teams under (league, season): an existing row for the
// same tuple has its columns refreshed, otherwise a row is inserted.
func (s *FootballCacheService) SaveTeams(ctx context.Context, resp *apimodel.TeamResponse, leagueID int64, season int) error {
	if resp.IsEmpty() {
		return nil
	}

	var errs []error
	for _, item := range resp.Response {
		if item.Team.ID <= 0 {
			continue
		}
		raw, err := sonic.MarshalString(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode team api_id=%d: %w", item.Team.ID, err))
			continue
		}

		row := teamRow(item, raw)
		row.LeagueID = &leagueID
		row.Season = &season

		existing, found, err := s.teamRepo.FindByAPIIDLeagueSeason(ctx, item.Team.ID, leagueID, season)
		if err != nil {
			errs = append(errs, fmt.Errorf("find team api_id=%d: %w", item.Team.ID, err))
			continue
		}
		if found {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			if err := s.teamRepo.Update(ctx, row); err != nil {
				errs = append(errs, fmt.Errorf("update team api_id=%d: %w", item.Team.ID, err))
			}
			continue
		}
		if err := s.teamRepo.Insert(ctx, row); err != nil {
			errs = append(errs, fmt.Errorf("insert team api_id=%d: %w", item.Team.ID, err))
		}
	}

	return errors.Join(errs...)
}

// SaveTeam stores teams fetched without league context, skipping any api id
// already cached under some league.
func (s *FootballCacheService) SaveTeam(ctx context.Context, resp *apimodel.TeamResponse) error {
	if resp.IsEmpty() {
		return nil
	}

	var errs []error
	for _, item := range resp.Response {
		if item.Team.ID <= 0 {
			continue
		}
		exists, err := s.teamRepo.ExistsByAPIID(ctx, item.Team.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("check team api_id=%d: %w", item.Team.ID, err))
			continue
		}
		if exists {
			continue
		}
		raw, err := sonic.MarshalString(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode team api_id=%d: %w", item.Team.ID, err))
			continue
		}
		if err := s.teamRepo.Insert(ctx, teamRow(item, raw)); err != nil {
			errs = append(errs, fmt.Errorf("insert team api_id=%d: %w", item.Team.ID, err))
		}
	}

	return errors.Join(errs...)
}

func (s *FootballCacheService) GetTeamsByLeague(ctx context.Context, leagueID int64, season int) (*apimodel.TeamResponse, error) {
	rows, err := s.teamRepo.ListByLeagueSeason(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("list cached teams: %w", err)
	}
	return s.teamEnvelope(ctx, rows), nil
}

func (s *FootballCacheService) GetTeamByID(ctx context.Context, teamID int64) (*apimodel.TeamResponse, error) {
	row, found, err := s.teamRepo.GetFirstByAPIID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get cached team: %w", err)
	}
	if !found {
		return nil, nil
	}
	return s.teamEnvelope(ctx, []team.Team{row}), nil
}

func (s *FootballCacheService) SearchTeams(ctx context.Context, name string) (*apimodel.TeamResponse, error) {
	rows, err := s.teamRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search cached teams: %w", err)
	}
	return s.teamEnvelope(ctx, rows), nil
}

// Players.

// SavePlayers stores players not cached yet under season.
func (s *FootballCacheService) SavePlayers(ctx context.Context, resp *apimodel.PlayerResponse, season int) error {
	if resp.IsEmpty() {
		return nil
	}

	var errs []error
	for _, item := range resp.Response {
		if err := s.SavePlayer(ctx, item, season); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SavePlayer is write-if-absent by (api id, season), the key of cached_players.
func (s *FootballCacheService) SavePlayer(ctx context.Context, item apimodel.PlayerData, season int) error {
	if item.Player.ID <= 0 {
		return nil
	}
	_, exists, err := s.playerRepo.GetByAPIIDAndSeason(ctx, item.Player.ID, season)
	if err != nil {
		return fmt.Errorf("check player api_id=%d season=%d: %w", item.Player.ID, season, err)
	}
	if exists {
		return nil
	}

	raw, err := sonic.MarshalString(item)
	if err != nil {
		return fmt.Errorf("encode player api_id=%d: %w", item.Player.ID, err)
	}
	if err := s.playerRepo.Insert(ctx, playerRow(item, raw, season)); err != nil {
		return fmt.Errorf("insert player api_id=%d: %w", item.Player.ID, err)
	}
	return nil
}

func (s *FootballCacheService) GetPlayersByTeam(ctx context.Context, teamID int64, season int) (*apimodel.PlayerResponse, error) {
	rows, err := s.playerRepo.ListByTeamSeason(ctx, teamID, season)
	if err != nil {
		return nil, fmt.Errorf("list cached players: %w", err)
	}
	return s.playerEnvelope(ctx, rows), nil
}

// GetPlayerByID prefers the row of the requested season and falls back to
// any cached season.
func (s *FootballCacheService) GetPlayerByID(ctx context.Context, playerID int64, season int) (*apimodel.PlayerResponse, error) {
	row, found, err := s.playerRepo.GetByAPIIDAndSeason(ctx, playerID, season)
	if err != nil {
		return nil, fmt.Errorf("get cached player: %w", err)
	}
	if !found {
		row, found, err = s.playerRepo.GetFirstByAPIID(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("get cached player: %w", err)
		}
	}
	if !found {
		return nil, nil
	}
	return s.playerEnvelope(ctx, []player.Player{row}), nil
}

// SearchPlayers narrows by league and season first and widens to name only
// when that finds nothing.
func (s *FootballCacheService) SearchPlayers(ctx context.Context, name string, leagueID int64, season int) (*apimodel.PlayerResponse, error) {
	rows, err := s.playerRepo.SearchByNameLeagueSeason(ctx, name, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("search cached players: %w", err)
	}
	if len(rows) == 0 {
		rows, err = s.playerRepo.SearchByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("search cached players: %w", err)
		}
	}
	return s.playerEnvelope(ctx, rows), nil
}

// Standings and squads.

func (s *FootballCacheService) SaveStandings(ctx context.Context, resp *apimodel.StandingsResponse, leagueID int64, season int) error {
	if resp == nil {
		return nil
	}
	raw, err := sonic.MarshalString(resp)
	if err != nil {
		return fmt.Errorf("encode standings: %w", err)
	}
	if err := s.standingsRepo.Replace(ctx, leagueID, season, raw); err != nil {
		return fmt.Errorf("replace standings league=%d season=%d: %w", leagueID, season, err)
	}
	return nil
}

func (s *FootballCacheService) GetStandings(ctx context.Context, leagueID int64, season int) (*apimodel.StandingsResponse, error) {
	row, found, err := s.standingsRepo.Get(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("get cached standings: %w", err)
	}
	if !found {
		return nil, nil
	}

	var out apimodel.StandingsResponse
	if err := sonic.UnmarshalString(row.RawJSON, &out); err != nil {
		s.logger.WarnContext(ctx, "cached standings unreadable, treating as miss", "league_id", leagueID, "season", season, "error", err)
		return nil, nil
	}
	return &out, nil
}

func (s *FootballCacheService) SaveSquad(ctx context.Context, resp *apimodel.SquadResponse, teamID int64) error {
	if resp == nil {
		return nil
	}
	raw, err := sonic.MarshalString(resp)
	if err != nil {
		return fmt.Errorf("encode squad: %w", err)
	}
	if err := s.squadRepo.Replace(ctx, teamID, raw); err != nil {
		return fmt.Errorf("replace squad team=%d: %w", teamID, err)
	}
	return nil
}

func (s *FootballCacheService) GetSquad(ctx context.Context, teamID int64) (*apimodel.SquadResponse, error) {
	row, found, err := s.squadRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get cached squad: %w", err)
	}
	if !found {
		return nil, nil
	}

	var out apimodel.SquadResponse
	if err := sonic.UnmarshalString(row.RawJSON, &out); err != nil {
		s.logger.WarnContext(ctx, "cached squad unreadable, treating as miss", "team_id", teamID, "error", err)
		return nil, nil
	}
	return &out, nil
}

// Stats counts every cached kind concurrently.
func (s *FootballCacheService) Stats(ctx context.Context) (CacheStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballCacheService.Stats")
	defer span.End()

	var stats CacheStats
	p := pool.New().WithContext(ctx).WithFirstError().WithCancelOnError()
	count := func(dst *int64, name string, fn func(context.Context) (int64, error)) {
		p.Go(func(ctx context.Context) error {
			n, err := fn(ctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}
	count(&stats.Leagues, "leagues", s.leagueRepo.Count)
	count(&stats.Teams, "teams", s.teamRepo.Count)
	count(&stats.Players, "players", s.playerRepo.Count)
	count(&stats.Standings, "standings", s.standingsRepo.Count)
	count(&stats.Squads, "squads", s.squadRepo.Count)

	if err := p.Wait(); err != nil {
		return CacheStats{}, err
	}
	if s.memory != nil {
		mem := s.memory.Stats()
		stats.Memory = &mem
	}
	return stats, nil
}
