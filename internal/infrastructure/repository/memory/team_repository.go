package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) Insert(_ context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate team: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := strings.TrimSpace(item.ID)
	stored, ok := r.store.teams[id]
	if !ok {
		item.ID = id
		r.store.teams[id] = item
		return nil
	}
	if stored.Slug == "" {
		stored.Slug = strings.TrimSpace(item.Slug)
	}
	if stored.Conference == "" {
		stored.Conference = strings.TrimSpace(item.Conference)
	}
	r.store.teams[id] = stored
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.teams[teamID]
	return item, ok, nil
}
