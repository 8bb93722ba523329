package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/football-cache/internal/domain/league"
	"github.com/riskibarqy/football-cache/internal/domain/player"
	"github.com/riskibarqy/football-cache/internal/domain/team"
)

func TestLeagueRepository_WriteIfAbsentAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewLeagueRepository()

	inserted, err := repo.Insert(ctx, league.League{APIID: 140, Name: "La Liga", CountryName: "Spain"})
	if err != nil || !inserted {
		t.Fatalf("first insert: inserted=%v err=%v", inserted, err)
	}
	inserted, err = repo.Insert(ctx, league.League{APIID: 140, Name: "Renamed", CountryName: "Spain"})
	if err != nil || inserted {
		t.Fatalf("second insert should be ignored: inserted=%v err=%v", inserted, err)
	}
	if _, err := repo.Insert(ctx, league.League{APIID: 39, Name: "Premier League", CountryName: "England"}); err != nil {
		t.Fatalf("insert premier league: %v", err)
	}

	got, _, _ := repo.GetByAPIID(ctx, 140)
	if got.Name != "La Liga" {
		t.Fatalf("expected original row to be kept, got %q", got.Name)
	}

	byCountry, _ := repo.ListByCountry(ctx, "spain")
	if len(byCountry) != 1 || byCountry[0].APIID != 140 {
		t.Fatalf("unexpected leagues by country: %+v", byCountry)
	}

	search, _ := repo.SearchByNameOrCountry(ctx, "ENG")
	if len(search) != 1 || search[0].APIID != 39 {
		t.Fatalf("unexpected search result: %+v", search)
	}

	all, _ := repo.ListAll(ctx)
	if len(all) != 2 || all[0].Name != "La Liga" {
		t.Fatalf("expected name ordering, got %+v", all)
	}
}

func TestTeamRepository_LeagueSeasonScope(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamRepository()
	leagueID, season := int64(39), 2024

	if err := repo.Insert(ctx, team.Team{APIID: 33, Name: "Manchester United", LeagueID: &leagueID, Season: &season}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, team.Team{APIID: 33, Name: "Manchester United"}); err != nil {
		t.Fatalf("insert without league: %v", err)
	}

	row, found, _ := repo.FindByAPIIDLeagueSeason(ctx, 33, leagueID, season)
	if !found {
		t.Fatalf("expected scoped row")
	}
	row.Name = "Man Utd"
	if err := repo.Update(ctx, row); err != nil {
		t.Fatalf("update: %v", err)
	}

	teams, _ := repo.ListByLeagueSeason(ctx, leagueID, season)
	if len(teams) != 1 || teams[0].Name != "Man Utd" {
		t.Fatalf("unexpected league teams: %+v", teams)
	}
	if n, _ := repo.Count(ctx); n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}
}

func TestPlayerRepository_SeasonUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository()
	leagueID := int64(39)

	for i := 0; i < 2; i++ {
		if err := repo.Insert(ctx, player.Player{APIID: 276, Name: "Neymar", Season: 2024, LeagueID: &leagueID}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("expected one row per (api id, season), got %d", n)
	}

	scoped, _ := repo.SearchByNameLeagueSeason(ctx, "ney", leagueID, 2024)
	if len(scoped) != 1 || scoped[0].SearchKey != "neymar" {
		t.Fatalf("unexpected scoped search: %+v", scoped)
	}
	other, _ := repo.SearchByNameLeagueSeason(ctx, "ney", leagueID, 2023)
	if len(other) != 0 {
		t.Fatalf("expected no match for another season, got %+v", other)
	}
}

func TestStandingsAndSquadReplace(t *testing.T) {
	ctx := context.Background()
	standingsRepo := NewStandingsRepository()
	squadRepo := NewSquadRepository()

	_ = standingsRepo.Replace(ctx, 39, 2024, `{"v":1}`)
	_ = standingsRepo.Replace(ctx, 39, 2024, `{"v":2}`)
	row, found, _ := standingsRepo.Get(ctx, 39, 2024)
	if !found || row.RawJSON != `{"v":2}` {
		t.Fatalf("unexpected standings row: %+v", row)
	}
	if n, _ := standingsRepo.Count(ctx); n != 1 {
		t.Fatalf("expected single standings row, got %d", n)
	}

	_ = squadRepo.Replace(ctx, 33, `{"a":1}`)
	_ = squadRepo.Replace(ctx, 33, `{"a":2}`)
	sq, found, _ := squadRepo.GetByTeamID(ctx, 33)
	if !found || sq.RawJSON != `{"a":2}` {
		t.Fatalf("unexpected squad row: %+v", sq)
	}
}
