package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cbb-tracker/internal/domain/watchlist"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
)

type WatchlistService struct {
	repo   watchlist.Repository
	logger *logging.Logger
}

func NewWatchlistService(repo watchlist.Repository, logger *logging.Logger) *WatchlistService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WatchlistService{repo: repo, logger: logger}
}

func (s *WatchlistService) List(ctx context.Context) (watchlist.List, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WatchlistService.List")
	defer span.End()

	list, err := s.repo.Load(ctx)
	if err != nil {
		recordSpanError(span, err)
		return watchlist.List{}, fmt.Errorf("load watchlist: %w", err)
	}
	return list, nil
}

func (s *WatchlistService) Add(ctx context.Context, name, team string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.WatchlistService.Add")
	defer span.End()

	list, err := s.repo.Load(ctx)
	if err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("load watchlist: %w", err)
	}
	if err := list.Add(watchlist.Entry{Name: name, Team: team}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Save(ctx, list); err != nil {
		recordSpanError(span, err)
		return fmt.Errorf("save watchlist: %w", err)
	}

	s.logger.InfoContext(ctx, "watchlist entry added", "player", name, "team", team)
	return nil
}

// Remove drops entries by name, narrowed by team when non-empty, and reports
// how many were removed. Nothing is written when no entry matched.
func (s *WatchlistService) Remove(ctx context.Context, name, team string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WatchlistService.Remove")
	defer span.End()

	list, err := s.repo.Load(ctx)
	if err != nil {
		recordSpanError(span, err)
		return 0, fmt.Errorf("load watchlist: %w", err)
	}
	removed := list.Remove(name, team)
	if removed == 0 {
		return 0, nil
	}
	if err := s.repo.Save(ctx, list); err != nil {
		recordSpanError(span, err)
		return 0, fmt.Errorf("save watchlist: %w", err)
	}

	s.logger.InfoContext(ctx, "watchlist entries removed", "player", name, "team", team, "removed", removed)
	return removed, nil
}
