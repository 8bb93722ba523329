package postgres

import (
	"time"

	"github.com/riskibarqy/football-cache/internal/domain/squad"
)

const squadTable = "cached_squads"

type squadTableModel struct {
	ID        int64     `db:"id"`
	TeamID    int64     `db:"team_id"`
	RawJSON   string    `db:"raw_json"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type squadInsertModel struct {
	TeamID  int64  `db:"team_id"`
	RawJSON string `db:"raw_json"`
}

func squadFromRow(row squadTableModel) squad.Squad {
	return squad.Squad{
		ID:        row.ID,
		TeamID:    row.TeamID,
		RawJSON:   row.RawJSON,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
