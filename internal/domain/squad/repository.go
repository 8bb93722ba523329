package squad

import "context"

type Repository interface {
	// Replace drops any existing row for teamID and stores rawJSON atomically.
	Replace(ctx context.Context, teamID int64, rawJSON string) error
	GetByTeamID(ctx context.Context, teamID int64) (Squad, bool, error)
	Count(ctx context.Context) (int64, error)
}
