package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-cache/internal/domain/league"
	qb "github.com/riskibarqy/football-cache/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) ExistsByAPIID(ctx context.Context, apiID int64) (bool, error) {
	return existsBy(ctx, r.db, leagueTable, qb.Eq("api_id", apiID))
}

// Insert is a no-op returning false when api_id is already cached.
func (r *LeagueRepository) Insert(ctx context.Context, item league.League) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	query, args, err := qb.InsertModel(leagueTable, leagueInsertFromDomain(item), qb.OnConflictDoNothing("api_id"))
	if err != nil {
		return false, fmt.Errorf("build insert league query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert league: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert league rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *LeagueRepository) GetByAPIID(ctx context.Context, apiID int64) (league.League, bool, error) {
	query, args, err := qb.Select("*").From(leagueTable).
		Where(qb.Eq("api_id", apiID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by api id query: %w", err)
	}

	var row leagueTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by api id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) ListAll(ctx context.Context) ([]league.League, error) {
	return r.list(ctx, "list leagues")
}

func (r *LeagueRepository) ListByCountry(ctx context.Context, country string) ([]league.League, error) {
	return r.list(ctx, "list leagues by country", qb.EqFold("country_name", country))
}

func (r *LeagueRepository) SearchByName(ctx context.Context, query string) ([]league.League, error) {
	return r.list(ctx, "search leagues by name", qb.Contains("name", query))
}

func (r *LeagueRepository) SearchByNameOrCountry(ctx context.Context, query string) ([]league.League, error) {
	return r.list(ctx, "search leagues", qb.Or(
		qb.Contains("name", query),
		qb.Contains("country_name", query),
	))
}

func (r *LeagueRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, leagueTable)
}

func (r *LeagueRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]league.League, error) {
	query, args, err := qb.Select("*").From(leagueTable).
		Where(conditions...).
		OrderBy("name ASC", "api_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []leagueTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}
