package league

import (
	"fmt"
	"time"
)

// League is a cached row of the upstream /leagues catalogue.
type League struct {
	ID            int64
	APIID         int64
	Name          string
	Type          string
	Logo          string
	CountryName   string
	CountryCode   string
	CountryFlag   string
	CurrentSeason *int
	RawJSON       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (l League) Validate() error {
	if l.APIID <= 0 {
		return fmt.Errorf("league api id must be > 0")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}
