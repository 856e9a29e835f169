package memory

import (
	"context"

	"github.com/riskibarqy/cbb-tracker/internal/domain/rawdata"
)

type RawDataRepository struct {
	store *Store
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		if item.PayloadHash == "" {
			item = item.WithHash()
		}
		r.store.raw[rawKey{source: item.Source, entityType: item.EntityType, entityKey: item.EntityKey}] = item
	}
	return nil
}
