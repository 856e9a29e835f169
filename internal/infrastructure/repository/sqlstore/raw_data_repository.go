package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cbb-tracker/internal/domain/rawdata"
	qb "github.com/riskibarqy/cbb-tracker/internal/platform/querybuilder"
)

type RawDataRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db, now: time.Now}
}

func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ingestedAt := r.now().UTC()
	for _, item := range items {
		if item.PayloadHash == "" {
			item = item.WithHash()
		}
		query, args, err := qb.ReplaceModel("raw_payloads", rawPayloadTableModel{
			Source:      item.Source,
			EntityType:  item.EntityType,
			EntityKey:   item.EntityKey,
			Payload:     item.PayloadJSON,
			PayloadHash: item.PayloadHash,
			IngestedAt:  ingestedAt,
		}, "source", "entity_type", "entity_key")
		if err != nil {
			return fmt.Errorf("build upsert raw payload query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("upsert raw payload %s/%s/%s: %w", item.Source, item.EntityType, item.EntityKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit raw payload tx: %w", err)
	}
	return nil
}
