package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	qb "github.com/riskibarqy/cbb-tracker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Insert ignores the row when either the id or (name, team) already exists
// and returns whichever row owns the identity.
func (r *PlayerRepository) Insert(ctx context.Context, item player.Player) (player.Player, error) {
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("validate player: %w", err)
	}
	kind := item.Kind
	if kind == "" {
		kind = player.IdentityProvider
	}
	model := playerTableModel{
		ID:           strings.TrimSpace(item.ID),
		Name:         strings.TrimSpace(item.Name),
		TeamID:       strings.TrimSpace(item.TeamID),
		IdentityKind: string(kind),
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, fmt.Errorf("begin tx insert player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("players", model, qb.OnConflictDoNothing())
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player id=%s: %w", model.ID, err)
	}

	stored, err := getStoredPlayer(ctx, tx, qb.Eq("player_id", model.ID))
	if isNotFound(err) {
		stored, err = getStoredPlayer(ctx, tx, qb.Eq("player_name", model.Name), qb.Eq("team_id", model.TeamID))
	}
	if err != nil {
		return player.Player{}, fmt.Errorf("select stored player id=%s: %w", model.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return player.Player{}, fmt.Errorf("commit insert player tx: %w", err)
	}
	return toPlayer(stored), nil
}

func getStoredPlayer(ctx context.Context, tx *sqlx.Tx, conds ...qb.Condition) (playerTableModel, error) {
	query, args, err := qb.Select("player_id", "player_name", "team_id", "identity_kind").
		From("players").
		Where(conds...).
		Limit(1).
		ToSQL()
	if err != nil {
		return playerTableModel{}, fmt.Errorf("build select stored player query: %w", err)
	}

	var row playerTableModel
	if err := tx.GetContext(ctx, &row, tx.Rebind(query), args...); err != nil {
		return playerTableModel{}, err
	}
	return row, nil
}

func (r *PlayerRepository) FindByName(ctx context.Context, name, teamID string) ([]player.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	exact, err := r.selectPlayers(ctx, qb.EqFold("player_name", name), teamID)
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return exact, nil
	}
	return r.selectPlayers(ctx, qb.Contains("player_name", name), teamID)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, nameCond qb.Condition, teamID string) ([]player.Player, error) {
	conds := []qb.Condition{nameCond}
	if teamID = strings.TrimSpace(teamID); teamID != "" {
		conds = append(conds, qb.Eq("team_id", teamID))
	}

	query, args, err := qb.Select("player_id", "player_name", "team_id", "identity_kind").
		From("players").
		Where(conds...).
		OrderBy("player_name", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPlayer(row))
	}
	return out, nil
}

func toPlayer(row playerTableModel) player.Player {
	return player.Player{
		ID:     row.ID,
		Name:   row.Name,
		TeamID: row.TeamID,
		Kind:   player.IdentityKind(row.IdentityKind),
	}
}
