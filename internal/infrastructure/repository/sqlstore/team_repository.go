package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
	qb "github.com/riskibarqy/cbb-tracker/internal/platform/querybuilder"
)

// Stored slug and conference are only replaced while empty.
const teamBackfillSuffix = `ON CONFLICT (team_id) DO UPDATE SET
    team_slug = CASE WHEN teams.team_slug = '' THEN excluded.team_slug ELSE teams.team_slug END,
    conference = CASE WHEN teams.conference = '' THEN excluded.conference ELSE teams.conference END`

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate team: %w", err)
	}

	query, args, err := qb.InsertModel("teams", teamTableModel{
		ID:         strings.TrimSpace(item.ID),
		Name:       strings.TrimSpace(item.Name),
		Slug:       strings.TrimSpace(item.Slug),
		Conference: strings.TrimSpace(item.Conference),
	}, teamBackfillSuffix)
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("insert team id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("team_id", "team_name", "team_slug", "conference").
		From("teams").
		Where(qb.Eq("team_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team id=%s: %w", teamID, err)
	}
	return team.Team{ID: row.ID, Name: row.Name, Slug: row.Slug, Conference: row.Conference}, true, nil
}
