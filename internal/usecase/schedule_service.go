package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// ScheduleStats counts what the season filter did to one schedule.
type ScheduleStats struct {
	Fetched     int
	OutOfSeason int
	Completed   int
}

type ScheduleService struct {
	provider StatsProvider
	logger   *logging.Logger
}

func NewScheduleService(provider StatsProvider, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{provider: provider, logger: logger}
}

// Events returns the team's events for seasonYear ordered by date, then id.
// Events reporting a different season are dropped even though the schedule
// was requested for seasonYear.
func (s *ScheduleService) Events(ctx context.Context, teamID string, seasonYear int) ([]ExternalEvent, ScheduleStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Events",
		attribute.String("team.id", teamID),
		attribute.Int("season.year", seasonYear),
	)
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" || seasonYear <= 0 {
		return nil, ScheduleStats{}, fmt.Errorf("%w: team id and season year are required", ErrInvalidInput)
	}

	events, err := s.provider.FetchSchedule(ctx, teamID, seasonYear)
	if err != nil {
		recordSpanError(span, err)
		return nil, ScheduleStats{}, fmt.Errorf("fetch schedule team_id=%s season=%d: %w", teamID, seasonYear, err)
	}

	stats := ScheduleStats{Fetched: len(events)}
	out := make([]ExternalEvent, 0, len(events))
	for _, item := range events {
		if item.SeasonYear != 0 && item.SeasonYear != seasonYear {
			stats.OutOfSeason++
			s.logger.DebugContext(ctx, "skip out-of-season event",
				"team_id", teamID,
				"event_id", item.ID,
				"event_season", item.SeasonYear,
				"season", seasonYear,
			)
			continue
		}
		if item.IsCompleted() {
			stats.Completed++
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, stats, nil
}
