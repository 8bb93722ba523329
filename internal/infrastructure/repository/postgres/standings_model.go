package postgres

import (
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/standings"
)

const standingsTable = "cached_standings"

type standingsTableModel struct {
	ID        int64     `db:"id"`
	LeagueID  int64     `db:"league_id"`
	Season    int       `db:"season"`
	RawJSON   string    `db:"raw_json"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type standingsInsertModel struct {
	LeagueID int64  `db:"league_id"`
	Season   int    `db:"season"`
	RawJSON  string `db:"raw_json"`
}

func standingsFromRow(row standingsTableModel) standings.Standings {
	return standings.Standings{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		Season:    row.Season,
		RawJSON:   row.RawJSON,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
