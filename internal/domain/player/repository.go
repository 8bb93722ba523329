package player

import "context"

// Repository describes player cache persistence needs from use cases.
type Repository interface {
	ExistsByAPIID(ctx context.Context, apiID int64) (bool, error)
	Insert(ctx context.Context, item Player) error
	GetByAPIIDAndSeason(ctx context.Context, apiID int64, season int) (Player, bool, error)
	GetFirstByAPIID(ctx context.Context, apiID int64) (Player, bool, error)
	ListByTeamSeason(ctx context.Context, teamID int64, season int) ([]Player, error)
	SearchByName(ctx context.Context, name string) ([]Player, error)
	SearchByNameLeagueSeason(ctx context.Context, name string, leagueID int64, season int) ([]Player, error)
	Count(ctx context.Context) (int64, error)
}
