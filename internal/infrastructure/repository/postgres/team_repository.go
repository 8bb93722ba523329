package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-cache/internal/domain/team"
	qb "github.com/riskibarqy/football-cache/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) FindByAPIIDLeagueSeason(ctx context.Context, apiID, leagueID int64, season int) (team.Team, bool, error) {
	return r.first(ctx, "find team by league season",
		qb.Eq("api_id", apiID),
		qb.Eq("league_id", leagueID),
		qb.Eq("season", season),
	)
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel(teamTable, teamInsertFromDomain(item), "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.ID <= 0 {
		return fmt.Errorf("team row id is required")
	}

	m := teamInsertFromDomain(item)
	query, args, err := qb.Update(teamTable).
		Set("name", m.Name).
		Set("code", m.Code).
		Set("country", m.Country).
		Set("founded", m.Founded).
		Set("national", m.National).
		Set("logo", m.Logo).
		Set("venue_id", m.VenueID).
		Set("venue_name", m.VenueName).
		Set("venue_address", m.VenueAddress).
		Set("venue_city", m.VenueCity).
		Set("venue_capacity", m.VenueCapacity).
		Set("venue_surface", m.VenueSurface).
		Set("venue_image", m.VenueImage).
		Set("raw_json", m.RawJSON).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func (r *TeamRepository) ExistsByAPIID(ctx context.Context, apiID int64) (bool, error) {
	return existsBy(ctx, r.db, teamTable, qb.Eq("api_id", apiID))
}

func (r *TeamRepository) GetFirstByAPIID(ctx context.Context, apiID int64) (team.Team, bool, error) {
	return r.first(ctx, "get team by api id", qb.Eq("api_id", apiID))
}

func (r *TeamRepository) ListByLeagueSeason(ctx context.Context, leagueID int64, season int) ([]team.Team, error) {
	return r.list(ctx, "list teams by league season", "name ASC",
		qb.Eq("league_id", leagueID),
		qb.Eq("season", season),
	)
}

func (r *TeamRepository) SearchByName(ctx context.Context, name string) ([]team.Team, error) {
	return r.list(ctx, "search teams", "id ASC", qb.Contains("name", name))
}

func (r *TeamRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, teamTable)
}

func (r *TeamRepository) first(ctx context.Context, op string, conditions ...qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From(teamTable).
		Where(conditions...).
		OrderBy("id ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row teamTableModel
	if err := getContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) list(ctx context.Context, op, orderBy string, conditions ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select("*").From(teamTable).
		Where(conditions...).
		OrderBy(orderBy).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []teamTableModel
	if err := selectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}
