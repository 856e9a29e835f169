package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
)

type GameRepository struct {
	store *Store
}

func (r *GameRepository) Upsert(_ context.Context, item game.Game) error {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return fmt.Errorf("game id is required")
	}
	item.Status = game.NormalizeStatus(item.Status)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.games[item.ID] = item
	return nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.games[gameID]
	return item, ok, nil
}

func (r *GameRepository) CountBySeason(_ context.Context, seasonYear int, completedOnly bool) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, item := range r.store.games {
		if item.SeasonYear != seasonYear {
			continue
		}
		if completedOnly && !game.IsCompletedStatus(item.Status) {
			continue
		}
		count++
	}
	return count, nil
}
