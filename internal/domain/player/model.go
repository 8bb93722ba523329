package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is a cached player row. Team and league columns come from the first
// statistics entry of the upstream payload.
type Player struct {
	ID           int64
	APIID        int64
	Name         string
	Firstname    string
	Lastname     string
	Age          *int
	BirthDate    string
	BirthPlace   string
	BirthCountry string
	Nationality  string
	Height       string
	Weight       string
	Photo        string
	Injured      bool
	TeamID       *int64
	TeamName     string
	TeamLogo     string
	LeagueID     *int64
	LeagueName   string
	Season       int
	Position     string
	SearchKey    string
	RawJSON      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Player) Validate() error {
	if p.APIID <= 0 {
		return fmt.Errorf("player api id must be > 0")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// SearchKeyFor normalizes a player name for case-insensitive lookups.
func SearchKeyFor(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
