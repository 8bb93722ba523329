package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/team"
)

const teamTable = "cached_teams"

type teamTableModel struct {
	ID            int64          `db:"id"`
	APIID         int64          `db:"api_id"`
	Name          string         `db:"name"`
	Code          string         `db:"code"`
	Country       string         `db:"country"`
	Founded       sql.NullInt64  `db:"founded"`
	National      bool           `db:"national"`
	Logo          string         `db:"logo"`
	VenueID       sql.NullInt64  `db:"venue_id"`
	VenueName     string         `db:"venue_name"`
	VenueAddress  string         `db:"venue_address"`
	VenueCity     string         `db:"venue_city"`
	VenueCapacity sql.NullInt64  `db:"venue_capacity"`
	VenueSurface  string         `db:"venue_surface"`
	VenueImage    string         `db:"venue_image"`
	LeagueID      sql.NullInt64  `db:"league_id"`
	Season        sql.NullInt64  `db:"season"`
	RawJSON       sql.NullString `db:"raw_json"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type teamInsertModel struct {
	APIID         int64          `db:"api_id"`
	Name          string         `db:"name"`
	Code          string         `db:"code"`
	Country       string         `db:"country"`
	Founded       sql.NullInt64  `db:"founded"`
	National      bool           `db:"national"`
	Logo          string         `db:"logo"`
	VenueID       sql.NullInt64  `db:"venue_id"`
	VenueName     string         `db:"venue_name"`
	VenueAddress  string         `db:"venue_address"`
	VenueCity     string         `db:"venue_city"`
	VenueCapacity sql.NullInt64  `db:"venue_capacity"`
	VenueSurface  string         `db:"venue_surface"`
	VenueImage    string         `db:"venue_image"`
	LeagueID      sql.NullInt64  `db:"league_id"`
	Season        sql.NullInt64  `db:"season"`
	RawJSON       sql.NullString `db:"raw_json"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:            row.ID,
		APIID:         row.APIID,
		Name:          row.Name,
		Code:          row.Code,
		Country:       row.Country,
		Founded:       nullIntPtr(row.Founded),
		National:      row.National,
		Logo:          row.Logo,
		VenueID:       nullInt64Ptr(row.VenueID),
		VenueName:     row.VenueName,
		VenueAddress:  row.VenueAddress,
		VenueCity:     row.VenueCity,
		VenueCapacity: nullIntPtr(row.VenueCapacity),
		VenueSurface:  row.VenueSurface,
		VenueImage:    row.VenueImage,
		LeagueID:      nullInt64Ptr(row.LeagueID),
		Season:        nullIntPtr(row.Season),
		RawJSON:       row.RawJSON.String,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func teamInsertFromDomain(item team.Team) teamInsertModel {
	return teamInsertModel{
		APIID:         item.APIID,
		Name:          item.Name,
		Code:          item.Code,
		Country:       item.Country,
		Founded:       nullInt(item.Founded),
		National:      item.National,
		Logo:          item.Logo,
		VenueID:       nullInt64(item.VenueID),
		VenueName:     item.VenueName,
		VenueAddress:  item.VenueAddress,
		VenueCity:     item.VenueCity,
		VenueCapacity: nullInt(item.VenueCapacity),
		VenueSurface:  item.VenueSurface,
		VenueImage:    item.VenueImage,
		LeagueID:      nullInt64(item.LeagueID),
		Season:        nullInt(item.Season),
		RawJSON:       nullString(item.RawJSON),
	}
}
