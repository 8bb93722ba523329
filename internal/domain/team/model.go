package team

import (
	"fmt"
	"time"
)

// Team is a cached team row. The same upstream team may appear once per
// (league, season) it was fetched for, plus once without league context
// when fetched by id.
type Team struct {
	ID            int64
	APIID         int64
	Name          string
	Code          string
	Country       string
	Founded       *int
	National      bool
	Logo          string
	VenueID       *int64
	VenueName     string
	VenueAddress  string
	VenueCity     string
	VenueCapacity *int
	VenueSurface  string
	VenueImage    string
	LeagueID      *int64
	Season        *int
	RawJSON       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t Team) Validate() error {
	if t.APIID <= 0 {
		return fmt.Errorf("team api id must be > 0")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
