package team

import "context"

// Repository describes team cache persistence needs from use cases.
type Repository interface {
	FindByAPIIDLeagueSeason(ctx context.Context, apiID, leagueID int64, season int) (Team, bool, error)
	Insert(ctx context.Context, item Team) error
	// Update rewrites the columns of the row identified by item.ID.
	Update(ctx context.Context, item Team) error
	ExistsByAPIID(ctx context.Context, apiID int64) (bool, error)
	GetFirstByAPIID(ctx context.Context, apiID int64) (Team, bool, error)
	ListByLeagueSeason(ctx context.Context, leagueID int64, season int) ([]Team, error)
	SearchByName(ctx context.Context, name string) ([]Team, error)
	Count(ctx context.Context) (int64, error)
}
