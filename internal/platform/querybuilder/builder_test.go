package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("api_id", "name").
		From("cached_teams").
		Where(Eq("league_id", 39), Eq("season", 2024)).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT api_id, name FROM cached_teams WHERE league_id = $1 AND season = $2 ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 39 || args[1] != 2024 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("cached_leagues").
		Columns("api_id", "name").
		Values(39, "Premier League").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO cached_leagues (api_id, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 39 || args[1] != "Premier League" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("cached_teams").
		Set("name", "Arsenal").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", 7)).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE cached_teams SET name = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Arsenal" || args[1] != 7 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_CaseInsensitiveConditions(t *testing.T) {
	query, args, err := Select("*").
		From("cached_leagues").
		Where(Or(Contains("name", "liga_1%"), EqFold("country_name", "Spain"))).
		OrderBy("name ASC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM cached_leagues WHERE (name ILIKE $1 OR LOWER(country_name) = LOWER($2)) ORDER BY name ASC"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != `%liga\_1\%%` || args[1] != "Spain" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("cached_standings").
		Where(Eq("league_id", 39), Eq("season", 2024)).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM cached_standings WHERE league_id = $1 AND season = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 39 || args[1] != 2024 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("cached_standings").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		TeamID  int    `db:"team_id"`
		RawJSON string `db:"raw_json"`
		skipped string
		Ignored string `db:"-"`
	}

	query, args, err := InsertModel("cached_squads", row{TeamID: 33, RawJSON: "{}", skipped: "x", Ignored: "y"}, OnConflictDoNothing("team_id"))
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO cached_squads (team_id, raw_json) VALUES ($1, $2) ON CONFLICT (team_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 33 || args[1] != "{}" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_RejectsNonStruct(t *testing.T) {
	var nilRow *struct {
		ID int `db:"id"`
	}
	if _, _, err := InsertModel("cached_squads", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("cached_squads", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	if _, _, err := InsertModel("cached_squads", struct{ Name string }{"x"}, ""); err == nil {
		t.Fatalf("expected error for model without db columns")
	}
}

func TestOnConflictDoNothing(t *testing.T) {
	if got := OnConflictDoNothing("api_id", "season"); got != "ON CONFLICT (api_id, season) DO NOTHING" {
		t.Fatalf("unexpected suffix: %s", got)
	}
}

func TestUpdateBuilder_ExprArgsKeepNumbering(t *testing.T) {
	query, args, err := Update("cached_teams").
		Set("name", "Arsenal").
		SetExpr("expires_at", "NOW() + ? * INTERVAL '1 second'", 3600).
		Where(Eq("api_id", 42)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE cached_teams SET name = $1, expires_at = NOW() + $2 * INTERVAL '1 second' WHERE api_id = $3 RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != 3600 || args[2] != 42 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestOr_EmptyMatchesNothing(t *testing.T) {
	query, args, err := Select("1").From("cached_leagues").Where(Or()).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT 1 FROM cached_leagues WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("cached_leagues").Columns("api_id", "name").Values(39).ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}
