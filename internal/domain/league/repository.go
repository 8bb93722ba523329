package league

import "context"

// Repository persists cached leagues. Rows are written once and never
// overwritten; Insert reports false when the api id already exists.
type Repository interface {
	ExistsByAPIID(ctx context.Context, apiID int64) (bool, error)
	Insert(ctx context.Context, item League) (bool, error)
	GetByAPIID(ctx context.Context, apiID int64) (League, bool, error)
	ListAll(ctx context.Context) ([]League, error)
	ListByCountry(ctx context.Context, country string) ([]League, error)
	SearchByName(ctx context.Context, query string) ([]League, error)
	SearchByNameOrCountry(ctx context.Context, query string) ([]League, error)
	Count(ctx context.Context) (int64, error)
}
