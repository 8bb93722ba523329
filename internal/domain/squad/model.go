package squad

import "time"

// Squad holds the full upstream squad payload of one team.
type Squad struct {
	ID        int64
	TeamID    int64
	RawJSON   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
