package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-cache/internal/domain/league"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestLeagueRepository_InsertConflictIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeagueRepository(db)

	mock.ExpectExec(`INSERT INTO cached_leagues \(api_id, name, .*\) VALUES \(\$1, .*\) ON CONFLICT \(api_id\) DO NOTHING`).
		WithArgs(int64(39), "Premier League", "League", "", "England", "GB", "", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.Insert(context.Background(), league.League{
		APIID:       39,
		Name:        "Premier League",
		Type:        "League",
		CountryName: "England",
		CountryCode: "GB",
	})
	if err != nil {
		t.Fatalf("insert league: %v", err)
	}
	if inserted {
		t.Fatalf("expected conflicting insert to report false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLeagueRepository_InsertRejectsInvalid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeagueRepository(db)

	if _, err := repo.Insert(context.Background(), league.League{Name: "no id"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestLeagueRepository_GetByAPIIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeagueRepository(db)

	mock.ExpectQuery(`SELECT \* FROM cached_leagues WHERE api_id = \$1 LIMIT 1`).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "api_id"}))

	_, ok, err := repo.GetByAPIID(context.Background(), 999)
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	if ok {
		t.Fatalf("expected miss for unknown league")
	}
}

func TestLeagueRepository_SearchByNameOrCountry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeagueRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "api_id", "name", "type", "logo", "country_name", "country_code", "country_flag",
		"current_season", "raw_json", "created_at", "updated_at",
	}).AddRow(1, 140, "La Liga", "League", "", "Spain", "ES", "", 2024, nil, now, now)

	mock.ExpectQuery(`SELECT \* FROM cached_leagues WHERE \(name ILIKE \$1 OR country_name ILIKE \$2\) ORDER BY name ASC, api_id ASC`).
		WithArgs("%spa%", "%spa%").
		WillReturnRows(rows)

	items, err := repo.SearchByNameOrCountry(context.Background(), "spa")
	if err != nil {
		t.Fatalf("search leagues: %v", err)
	}
	if len(items) != 1 || items[0].APIID != 140 {
		t.Fatalf("unexpected leagues: %+v", items)
	}
	if items[0].CurrentSeason == nil || *items[0].CurrentSeason != 2024 {
		t.Fatalf("expected current season 2024, got %v", items[0].CurrentSeason)
	}
}

func TestPlayerRepository_SearchUsesNormalizedKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPlayerRepository(db)

	mock.ExpectQuery(`SELECT \* FROM cached_players WHERE search_key ILIKE \$1 ORDER BY id ASC`).
		WithArgs("%haaland%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "api_id"}))

	items, err := repo.SearchByName(context.Background(), "  HAALAND ")
	if err != nil {
		t.Fatalf("search players: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no players, got %d", len(items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSquadRepository_ReplaceRunsInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSquadRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM cached_squads WHERE team_id = \$1`).
		WithArgs(int64(50)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO cached_squads \(team_id, raw_json\) VALUES \(\$1, \$2\)`).
		WithArgs(int64(50), `{"team":{"id":50}}`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.Replace(context.Background(), 50, `{"team":{"id":50}}`); err != nil {
		t.Fatalf("replace squad: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStandingsRepository_ReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStandingsRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM cached_standings WHERE league_id = \$1 AND season = \$2`).
		WithArgs(int64(39), 2024).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO cached_standings`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), 39, 2024, `{}`)
	if err == nil {
		t.Fatalf("expected replace error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
