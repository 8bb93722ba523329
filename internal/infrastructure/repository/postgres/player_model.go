package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/player"
)

const playerTable = "cached_players"

type playerTableModel struct {
	ID           int64          `db:"id"`
	APIID        int64          `db:"api_id"`
	Name         string         `db:"name"`
	Firstname    string         `db:"firstname"`
	Lastname     string         `db:"lastname"`
	Age          sql.NullInt64  `db:"age"`
	BirthDate    string         `db:"birth_date"`
	BirthPlace   string         `db:"birth_place"`
	BirthCountry string         `db:"birth_country"`
	Nationality  string         `db:"nationality"`
	Height       string         `db:"height"`
	Weight       string         `db:"weight"`
	Photo        string         `db:"photo"`
	Injured      bool           `db:"injured"`
	TeamID       sql.NullInt64  `db:"team_id"`
	TeamName     string         `db:"team_name"`
	TeamLogo     string         `db:"team_logo"`
	LeagueID     sql.NullInt64  `db:"league_id"`
	LeagueName   string         `db:"league_name"`
	Season       int            `db:"season"`
	Position     string         `db:"position"`
	SearchKey    string         `db:"search_key"`
	RawJSON      sql.NullString `db:"raw_json"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	APIID        int64          `db:"api_id"`
	Name         string         `db:"name"`
	Firstname    string         `db:"firstname"`
	Lastname     string         `db:"lastname"`
	Age          sql.NullInt64  `db:"age"`
	BirthDate    string         `db:"birth_date"`
	BirthPlace   string         `db:"birth_place"`
	BirthCountry string         `db:"birth_country"`
	Nationality  string         `db:"nationality"`
	Height       string         `db:"height"`
	Weight       string         `db:"weight"`
	Photo        string         `db:"photo"`
	Injured      bool           `db:"injured"`
	TeamID       sql.NullInt64  `db:"team_id"`
	TeamName     string         `db:"team_name"`
	TeamLogo     string         `db:"team_logo"`
	LeagueID     sql.NullInt64  `db:"league_id"`
	LeagueName   string         `db:"league_name"`
	Season       int            `db:"season"`
	Position     string         `db:"position"`
	SearchKey    string         `db:"search_key"`
	RawJSON      sql.NullString `db:"raw_json"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		APIID:        row.APIID,
		Name:         row.Name,
		Firstname:    row.Firstname,
		Lastname:     row.Lastname,
		Age:          nullIntPtr(row.Age),
		BirthDate:    row.BirthDate,
		BirthPlace:   row.BirthPlace,
		BirthCountry: row.BirthCountry,
		Nationality:  row.Nationality,
		Height:       row.Height,
		Weight:       row.Weight,
		Photo:        row.Photo,
		Injured:      row.Injured,
		TeamID:       nullInt64Ptr(row.TeamID),
		TeamName:     row.TeamName,
		TeamLogo:     row.TeamLogo,
		LeagueID:     nullInt64Ptr(row.LeagueID),
		LeagueName:   row.LeagueName,
		Season:       row.Season,
		Position:     row.Position,
		SearchKey:    row.SearchKey,
		RawJSON:      row.RawJSON.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func playerInsertFromDomain(item player.Player) playerInsertModel {
	searchKey := item.SearchKey
	if searchKey == "" {
		searchKey = player.SearchKeyFor(item.Name)
	}

	return playerInsertModel{
		APIID:        item.APIID,
		Name:         item.Name,
		Firstname:    item.Firstname,
		Lastname:     item.Lastname,
		Age:          nullInt(item.Age),
		BirthDate:    item.BirthDate,
		BirthPlace:   item.BirthPlace,
		BirthCountry: item.BirthCountry,
		Nationality:  item.Nationality,
		Height:       item.Height,
		Weight:       item.Weight,
		Photo:        item.Photo,
		Injured:      item.Injured,
		TeamID:       nullInt64(item.TeamID),
		TeamName:     item.TeamName,
		TeamLogo:     item.TeamLogo,
		LeagueID:     nullInt64(item.LeagueID),
		LeagueName:   item.LeagueName,
		Season:       item.Season,
		Position:     item.Position,
		SearchKey:    searchKey,
		RawJSON:      nullString(item.RawJSON),
	}
}
