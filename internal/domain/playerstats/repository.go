package playerstats

import "context"

type Repository interface {
	// Upsert replaces any stored line with the same (player_id, game_id).
	Upsert(ctx context.Context, line Line) error
	SeasonAverages(ctx context.Context, filter AveragesFilter) ([]SeasonAverage, error)
	ListGameLog(ctx context.Context, playerID string, seasonYear, limit int) ([]GameLogEntry, error)
	CountByGame(ctx context.Context, gameID string) (int, error)
}
