package standings

import "context"

type Repository interface {
	// Replace drops any existing row for (leagueID, season) and stores rawJSON atomically.
	Replace(ctx context.Context, leagueID int64, season int, rawJSON string) error
	Get(ctx context.Context, leagueID int64, season int) (Standings, bool, error)
	Count(ctx context.Context) (int64, error)
}
