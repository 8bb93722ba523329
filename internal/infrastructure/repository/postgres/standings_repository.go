package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-cache/internal/domain/standings"
	qb "github.com/riskibarqy/football-cache/internal/platform/querybuilder"
)

type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) Replace(ctx context.Context, leagueID int64, season int, rawJSON string) error {
	return replaceInTx(ctx, r.db, "standings",
		qb.DeleteFrom(standingsTable).Where(qb.Eq("league_id", leagueID), qb.Eq("season", season)),
		standingsTable, standingsInsertModel{LeagueID: leagueID, Season: season, RawJSON: rawJSON},
	)
}

func (r *StandingsRepository) Get(ctx context.Context, leagueID int64, season int) (standings.Standings, bool, error) {
	query, args, err := qb.Select("*").From(standingsTable).
		Where(qb.Eq("league_id", leagueID), qb.Eq("season", season)).
		Limit(1).
		ToSQL()
	if err != nil {
		return standings.Standings{}, false, fmt.Errorf("build get standings query: %w", err)
	}

	var row standingsTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standings.Standings{}, false, nil
		}
		return standings.Standings{}, false, fmt.Errorf("get standings: %w", err)
	}
	return standingsFromRow(row), true, nil
}

func (r *StandingsRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, standingsTable)
}
