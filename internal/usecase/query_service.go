package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
)

const defaultGameLogLimit = 5

type GameLogQuery struct {
	Names      []string
	SeasonYear int
	// Last caps games per player, newest first.
	Last   int
	TeamID string
}

// PlayerGameLog is the result for one requested name. Player is zero when
// the name matched nothing.
type PlayerGameLog struct {
	Query    string
	Found    bool
	Player   player.Player
	TeamName string
	Games    []playerstats.GameLogEntry
}

type QueryService struct {
	resolver  *ResolverService
	teamRepo  team.Repository
	statsRepo playerstats.Repository
	logger    *logging.Logger
}

func NewQueryService(resolver *ResolverService, teamRepo team.Repository, statsRepo playerstats.Repository, logger *logging.Logger) *QueryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &QueryService{
		resolver:  resolver,
		teamRepo:  teamRepo,
		statsRepo: statsRepo,
		logger:    logger,
	}
}

func (s *QueryService) SeasonAverages(ctx context.Context, filter playerstats.AveragesFilter) ([]playerstats.SeasonAverage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.SeasonAverages")
	defer span.End()

	if filter.SeasonYear <= 0 {
		return nil, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}
	items, err := s.statsRepo.SeasonAverages(ctx, filter)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("season averages: %w", err)
	}
	return items, nil
}

// GameLogs resolves each name against stored players (exact, then partial)
// and returns the last games of every match. One name may yield several logs.
func (s *QueryService) GameLogs(ctx context.Context, query GameLogQuery) ([]PlayerGameLog, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GameLogs")
	defer span.End()

	if query.SeasonYear <= 0 {
		return nil, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}
	limit := query.Last
	if limit <= 0 {
		limit = defaultGameLogLimit
	}

	out := make([]PlayerGameLog, 0, len(query.Names))
	for _, name := range query.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		matches, err := s.resolver.ResolveStoredPlayers(ctx, name, query.TeamID)
		if err != nil {
			recordSpanError(span, err)
			return nil, err
		}
		if len(matches) == 0 {
			out = append(out, PlayerGameLog{Query: name})
			continue
		}

		for _, item := range matches {
			games, err := s.statsRepo.ListGameLog(ctx, item.ID, query.SeasonYear, limit)
			if err != nil {
				recordSpanError(span, err)
				return nil, fmt.Errorf("game log player_id=%s: %w", item.ID, err)
			}
			out = append(out, PlayerGameLog{
				Query:    name,
				Found:    true,
				Player:   item,
				TeamName: s.teamName(ctx, item.TeamID),
				Games:    games,
			})
		}
	}
	return out, nil
}

// teamName falls back to the id when the team is unknown.
func (s *QueryService) teamName(ctx context.Context, teamID string) string {
	item, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		s.logger.WarnContext(ctx, "lookup team name failed", "team_id", teamID, "error", err)
		return teamID
	}
	if !ok || item.Name == "" {
		return teamID
	}
	return item.Name
}
