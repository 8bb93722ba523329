package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-cache/internal/domain/squad"
	qb "github.com/riskibarqy/football-cache/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) Replace(ctx context.Context, teamID int64, rawJSON string) error {
	return replaceInTx(ctx, r.db, "squad",
		qb.DeleteFrom(squadTable).Where(qb.Eq("team_id", teamID)),
		squadTable, squadInsertModel{TeamID: teamID, RawJSON: rawJSON},
	)
}

func (r *SquadRepository) GetByTeamID(ctx context.Context, teamID int64) (squad.Squad, bool, error) {
	query, args, err := qb.Select("*").From(squadTable).
		Where(qb.Eq("team_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("build get squad query: %w", err)
	}

	var row squadTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squad.Squad{}, false, nil
		}
		return squad.Squad{}, false, fmt.Errorf("get squad: %w", err)
	}
	return squadFromRow(row), true, nil
}

func (r *SquadRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, squadTable)
}
