package team

import "context"

// Repository describes team persistence needs from use cases.
//
// Insert never overwrites a stored team. Only an empty slug or conference is
// backfilled from the incoming row.
type Repository interface {
	Insert(ctx context.Context, item Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
}
