package watchlist

import "context"

// Repository loads and stores the tracked-player list.
type Repository interface {
	Load(ctx context.Context) (List, error)
	Save(ctx context.Context, list List) error
}
