package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// Insert keeps the first stored row for a player id or (name, team) and
	// returns the row that is stored after the call.
	Insert(ctx context.Context, item Player) (Player, error)
	// FindByName matches names case-insensitively, exact matches first and
	// substring matches only when nothing matched exactly.
	FindByName(ctx context.Context, name, teamID string) ([]Player, error)
}
