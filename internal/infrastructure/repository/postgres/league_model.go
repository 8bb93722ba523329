package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/league"
)

const leagueTable = "cached_leagues"

type leagueTableModel struct {
	ID            int64          `db:"id"`
	APIID         int64          `db:"api_id"`
	Name          string         `db:"name"`
	Type          string         `db:"type"`
	Logo          string         `db:"logo"`
	CountryName   string         `db:"country_name"`
	CountryCode   string         `db:"country_code"`
	CountryFlag   string         `db:"country_flag"`
	CurrentSeason sql.NullInt64  `db:"current_season"`
	RawJSON       sql.NullString `db:"raw_json"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type leagueInsertModel struct {
	APIID         int64          `db:"api_id"`
	Name          string         `db:"name"`
	Type          string         `db:"type"`
	Logo          string         `db:"logo"`
	CountryName   string         `db:"country_name"`
	CountryCode   string         `db:"country_code"`
	CountryFlag   string         `db:"country_flag"`
	CurrentSeason sql.NullInt64  `db:"current_season"`
	RawJSON       sql.NullString `db:"raw_json"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:            row.ID,
		APIID:         row.APIID,
		Name:          row.Name,
		Type:          row.Type,
		Logo:          row.Logo,
		CountryName:   row.CountryName,
		CountryCode:   row.CountryCode,
		CountryFlag:   row.CountryFlag,
		CurrentSeason: nullIntPtr(row.CurrentSeason),
		RawJSON:       row.RawJSON.String,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func leagueInsertFromDomain(item league.League) leagueInsertModel {
	return leagueInsertModel{
		APIID:         item.APIID,
		Name:          item.Name,
		Type:          item.Type,
		Logo:          item.Logo,
		CountryName:   item.CountryName,
		CountryCode:   item.CountryCode,
		CountryFlag:   item.CountryFlag,
		CurrentSeason: nullInt(item.CurrentSeason),
		RawJSON:       nullString(item.RawJSON),
	}
}
