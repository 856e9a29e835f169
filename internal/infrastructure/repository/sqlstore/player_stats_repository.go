package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	qb "github.com/riskibarqy/cbb-tracker/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, line playerstats.Line) error {
	playerID := strings.TrimSpace(line.PlayerID)
	gameID := strings.TrimSpace(line.GameID)
	if playerID == "" || gameID == "" {
		return fmt.Errorf("player id and game id are required")
	}

	query, args, err := qb.ReplaceModel("player_game_stats", playerGameStatTableModel{
		PlayerID:  playerID,
		GameID:    gameID,
		Minutes:   strings.TrimSpace(line.Minutes),
		Points:    line.Points,
		Rebounds:  line.Rebounds,
		Assists:   line.Assists,
		Steals:    line.Steals,
		Blocks:    line.Blocks,
		Turnovers: line.Turnovers,
		FGM:       line.FGM,
		FGA:       line.FGA,
		TPM:       line.TPM,
		TPA:       line.TPA,
		FTM:       line.FTM,
		FTA:       line.FTA,
	}, "player_id", "game_id")
	if err != nil {
		return fmt.Errorf("build upsert player stat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert player stat player_id=%s game_id=%s: %w", playerID, gameID, err)
	}
	return nil
}

// SeasonAverages aggregates completed games only, highest scorers first.
func (r *PlayerStatsRepository) SeasonAverages(ctx context.Context, filter playerstats.AveragesFilter) ([]playerstats.SeasonAverage, error) {
	conds := []qb.Condition{
		qb.Eq("g.season_year", filter.SeasonYear),
		qb.In("lower(g.status)", completedStatusArgs()),
	}
	if teamID := strings.TrimSpace(filter.TeamID); teamID != "" {
		conds = append(conds, qb.Eq("p.team_id", teamID))
	}
	if playerID := strings.TrimSpace(filter.PlayerID); playerID != "" {
		conds = append(conds, qb.Eq("p.player_id", playerID))
	}

	query, args, err := qb.Select(
		"p.player_id",
		"p.player_name",
		"p.team_id",
		"COALESCE(t.team_name, '') AS team_name",
		"COUNT(*) AS games_played",
		"ROUND(AVG(s.pts), 1) AS ppg",
		"ROUND(AVG(s.reb), 1) AS rpg",
		"ROUND(AVG(s.ast), 1) AS apg",
		"ROUND(AVG(s.stl), 1) AS spg",
		"ROUND(AVG(s.blk), 1) AS bpg",
		"ROUND(AVG(s.tov), 1) AS tov",
	).
		From("player_game_stats s").
		Join("JOIN players p ON p.player_id = s.player_id").
		Join("JOIN games g ON g.game_id = s.game_id").
		Join("LEFT JOIN teams t ON t.team_id = p.team_id").
		Where(conds...).
		GroupBy("p.player_id", "p.player_name", "p.team_id", "t.team_name").
		OrderBy("ppg DESC", "p.player_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build season averages query: %w", err)
	}

	var rows []seasonAverageRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select season averages season=%d: %w", filter.SeasonYear, err)
	}

	out := make([]playerstats.SeasonAverage, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.SeasonAverage{
			PlayerID:    row.PlayerID,
			PlayerName:  row.PlayerName,
			TeamID:      row.TeamID,
			TeamName:    row.TeamName,
			GamesPlayed: row.GamesPlayed,
			PPG:         row.PPG,
			RPG:         row.RPG,
			APG:         row.APG,
			SPG:         row.SPG,
			BPG:         row.BPG,
			TOV:         row.TOV,
		})
	}
	return out, nil
}

// ListGameLog returns completed games, newest first. A zero seasonYear
// spans every season; a non-positive limit returns everything.
func (r *PlayerStatsRepository) ListGameLog(ctx context.Context, playerID string, seasonYear, limit int) ([]playerstats.GameLogEntry, error) {
	conds := []qb.Condition{
		qb.Eq("s.player_id", strings.TrimSpace(playerID)),
		qb.In("lower(g.status)", completedStatusArgs()),
	}
	if seasonYear > 0 {
		conds = append(conds, qb.Eq("g.season_year", seasonYear))
	}

	query, args, err := qb.Select(
		"g.game_id", "g.date", "g.home_team", "g.away_team",
		"s.player_id", "s.minutes", "s.pts", "s.reb", "s.ast", "s.stl", "s.blk", "s.tov",
		"s.fgm", "s.fga", "s.tpm", "s.tpa", "s.ftm", "s.fta",
	).
		From("player_game_stats s").
		Join("JOIN games g ON g.game_id = s.game_id").
		Where(conds...).
		OrderBy("g.date DESC", "g.game_id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build game log query: %w", err)
	}

	var rows []gameLogRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select game log player_id=%s: %w", playerID, err)
	}

	out := make([]playerstats.GameLogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.GameLogEntry{
			GameID:   row.GameID,
			Date:     row.Date,
			HomeTeam: row.HomeTeam,
			AwayTeam: row.AwayTeam,
			Line: playerstats.Line{
				PlayerID:  row.PlayerID,
				GameID:    row.GameID,
				Minutes:   row.Minutes,
				Points:    row.Points,
				Rebounds:  row.Rebounds,
				Assists:   row.Assists,
				Steals:    row.Steals,
				Blocks:    row.Blocks,
				Turnovers: row.Turnovers,
				FGM:       row.FGM,
				FGA:       row.FGA,
				TPM:       row.TPM,
				TPA:       row.TPA,
				FTM:       row.FTM,
				FTA:       row.FTA,
			},
		})
	}
	return out, nil
}

func (r *PlayerStatsRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("player_game_stats").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player stats query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count player stats game_id=%s: %w", gameID, err)
	}
	return count, nil
}
