package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	qb "github.com/riskibarqy/cbb-tracker/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert writes the canonical status token, never the provider label.
func (r *GameRepository) Upsert(ctx context.Context, item game.Game) error {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return fmt.Errorf("game id is required")
	}

	query, args, err := qb.ReplaceModel("games", gameTableModel{
		ID:         id,
		Date:       strings.TrimSpace(item.Date),
		HomeTeam:   strings.TrimSpace(item.HomeTeam),
		AwayTeam:   strings.TrimSpace(item.AwayTeam),
		Status:     game.NormalizeStatus(item.Status),
		SeasonYear: item.SeasonYear,
	}, "game_id")
	if err != nil {
		return fmt.Errorf("build upsert game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert game id=%s: %w", id, err)
	}
	return nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("game_id", "date", "home_team", "away_team", "status", "season_year").
		From("games").
		Where(qb.Eq("game_id", gameID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game id=%s: %w", gameID, err)
	}
	return game.Game{
		ID:         row.ID,
		Date:       row.Date,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		Status:     row.Status,
		SeasonYear: row.SeasonYear,
	}, true, nil
}

func (r *GameRepository) CountBySeason(ctx context.Context, seasonYear int, completedOnly bool) (int, error) {
	conds := []qb.Condition{qb.Eq("season_year", seasonYear)}
	if completedOnly {
		conds = append(conds, qb.In("lower(status)", completedStatusArgs()))
	}

	query, args, err := qb.Select("COUNT(*)").From("games").Where(conds...).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count games query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count games season=%d: %w", seasonYear, err)
	}
	return count, nil
}
