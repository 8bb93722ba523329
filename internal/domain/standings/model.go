package standings

import "time"

// Standings holds the full upstream standings payload of a league season.
type Standings struct {
	ID        int64
	LeagueID  int64
	Season    int
	RawJSON   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
