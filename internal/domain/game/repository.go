package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	// Upsert replaces any stored row for the same game id.
	Upsert(ctx context.Context, item Game) error
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	CountBySeason(ctx context.Context, seasonYear int, completedOnly bool) (int, error)
}
