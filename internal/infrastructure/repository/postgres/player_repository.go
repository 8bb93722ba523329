package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-cache/internal/domain/player"
	qb "github.com/riskibarqy/football-cache/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ExistsByAPIID(ctx context.Context, apiID int64) (bool, error) {
	return existsBy(ctx, r.db, playerTable, qb.Eq("api_id", apiID))
}

func (r *PlayerRepository) Insert(ctx context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel(playerTable, playerInsertFromDomain(item), qb.OnConflictDoNothing("api_id", "season"))
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) GetByAPIIDAndSeason(ctx context.Context, apiID int64, season int) (player.Player, bool, error) {
	return r.first(ctx, "get player by api id and season",
		qb.Eq("api_id", apiID),
		qb.Eq("season", season),
	)
}

func (r *PlayerRepository) GetFirstByAPIID(ctx context.Context, apiID int64) (player.Player, bool, error) {
	return r.first(ctx, "get player by api id", qb.Eq("api_id", apiID))
}

func (r *PlayerRepository) ListByTeamSeason(ctx context.Context, teamID int64, season int) ([]player.Player, error) {
	return r.list(ctx, "list players by team season", "name ASC",
		qb.Eq("team_id", teamID),
		qb.Eq("season", season),
	)
}

func (r *PlayerRepository) SearchByName(ctx context.Context, name string) ([]player.Player, error) {
	return r.list(ctx, "search players", "id ASC",
		qb.Contains("search_key", player.SearchKeyFor(name)),
	)
}

func (r *PlayerRepository) SearchByNameLeagueSeason(ctx context.Context, name string, leagueID int64, season int) ([]player.Player, error) {
	return r.list(ctx, "search players by league season", "id ASC",
		qb.Contains("search_key", player.SearchKeyFor(name)),
		qb.Eq("league_id", leagueID),
		qb.Eq("season", season),
	)
}

func (r *PlayerRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, playerTable)
}

func (r *PlayerRepository) first(ctx context.Context, op string, conditions ...qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From(playerTable).
		Where(conditions...).
		OrderBy("id ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row playerTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) list(ctx context.Context, op, orderBy string, conditions ...qb.Condition) ([]player.Player, error) {
	query, args, err := qb.Select("*").From(playerTable).
		Where(conditions...).
		OrderBy(orderBy).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []playerTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}
