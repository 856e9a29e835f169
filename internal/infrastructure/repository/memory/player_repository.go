package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func (r *PlayerRepository) Insert(_ context.Context, item player.Player) (player.Player, error) {
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("validate player: %w", err)
	}
	item.ID = strings.TrimSpace(item.ID)
	item.Name = strings.TrimSpace(item.Name)
	item.TeamID = strings.TrimSpace(item.TeamID)
	if item.Kind == "" {
		item.Kind = player.IdentityProvider
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if stored, ok := r.store.players[item.ID]; ok {
		return stored, nil
	}
	for _, stored := range r.store.players {
		if stored.Name == item.Name && stored.TeamID == item.TeamID {
			return stored, nil
		}
	}
	r.store.players[item.ID] = item
	return item, nil
}

func (r *PlayerRepository) FindByName(_ context.Context, name, teamID string) ([]player.Player, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	teamID = strings.TrimSpace(teamID)
	if name == "" {
		return nil, nil
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var exact, partial []player.Player
	for _, item := range r.store.players {
		if teamID != "" && item.TeamID != teamID {
			continue
		}
		stored := strings.ToLower(item.Name)
		switch {
		case stored == name:
			exact = append(exact, item)
		case strings.Contains(stored, name):
			partial = append(partial, item)
		}
	}

	out := exact
	if len(out) == 0 {
		out = partial
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}
