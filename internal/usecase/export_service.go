package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
)

var exportColumns = []string{
	"game_id", "date", "status", "home_team", "away_team", "team_id", "team_name",
	"player_id", "player_name", "minutes", "pts", "reb", "ast", "stl", "blk", "tov",
	"fgm", "fga", "tpm", "tpa", "ftm", "fta",
}

type ExportInput struct {
	Team       string
	SeasonYear int
	OutDir     string
	// SaveJSON also writes each raw summary as <event>.summary.json.
	SaveJSON bool
}

type ExportResult struct {
	CSVPath        string
	TeamID         string
	CompletedGames int
	Rows           int
	EventsFailed   int
	JSONFiles      int
}

// ExportService dumps every line of a team's completed games straight from
// the provider to CSV. The store is not touched.
type ExportService struct {
	provider StatsProvider
	resolver *ResolverService
	schedule *ScheduleService
	logger   *logging.Logger
}

func NewExportService(provider StatsProvider, resolver *ResolverService, schedule *ScheduleService, logger *logging.Logger) *ExportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExportService{
		provider: provider,
		resolver: resolver,
		schedule: schedule,
		logger:   logger,
	}
}

func (s *ExportService) Export(ctx context.Context, input ExportInput) (ExportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.Export")
	defer span.End()

	if strings.TrimSpace(input.OutDir) == "" || input.SeasonYear <= 0 {
		return ExportResult{}, fmt.Errorf("%w: output directory and season year are required", ErrInvalidInput)
	}

	resolved, err := s.resolver.ResolveTeam(ctx, input.Team)
	if err != nil {
		recordSpanError(span, err)
		return ExportResult{}, err
	}
	events, stats, err := s.schedule.Events(ctx, resolved.ID, input.SeasonYear)
	if err != nil {
		recordSpanError(span, err)
		return ExportResult{}, err
	}
	s.logger.InfoContext(ctx, "export schedule loaded",
		"team", resolved.DisplaySlug(),
		"team_id", resolved.ID,
		"events", stats.Fetched,
		"out_of_season", stats.OutOfSeason,
	)

	if err := os.MkdirAll(input.OutDir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("create export dir: %w", err)
	}
	result := ExportResult{
		TeamID:  resolved.ID,
		CSVPath: filepath.Join(input.OutDir, fmt.Sprintf("boxscores_%s_%d.csv", resolved.DisplaySlug(), input.SeasonYear)),
	}

	file, err := os.Create(result.CSVPath)
	if err != nil {
		return ExportResult{}, fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(exportColumns); err != nil {
		return ExportResult{}, fmt.Errorf("write csv header: %w", err)
	}

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !event.IsCompleted() {
			continue
		}
		result.CompletedGames++

		box, err := s.provider.FetchBoxScore(ctx, event.ID)
		if err != nil {
			result.EventsFailed++
			s.logger.WarnContext(ctx, "export box score failed, continuing", "event_id", event.ID, "error", err)
			continue
		}

		if input.SaveJSON && box.Raw.PayloadJSON != "" {
			path := filepath.Join(input.OutDir, event.ID+".summary.json")
			if err := os.WriteFile(path, []byte(box.Raw.PayloadJSON), 0o644); err != nil {
				return result, fmt.Errorf("write raw summary %s: %w", path, err)
			}
			result.JSONFiles++
		}

		for _, line := range box.Lines {
			if err := writer.Write(exportRecord(event, line)); err != nil {
				return result, fmt.Errorf("write csv row: %w", err)
			}
			result.Rows++
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return result, fmt.Errorf("flush csv: %w", err)
	}
	s.logger.InfoContext(ctx, "export completed",
		"path", result.CSVPath,
		"completed_games", result.CompletedGames,
		"rows", result.Rows,
	)
	return result, nil
}

func exportRecord(event ExternalEvent, line ExternalStatLine) []string {
	stat := line.Line
	return []string{
		event.ID,
		event.Date,
		event.StatusLabel,
		event.HomeTeam,
		event.AwayTeam,
		line.TeamID,
		line.TeamName,
		line.Player.ID,
		line.Player.Name,
		stat.Minutes,
		strconv.Itoa(stat.Points),
		strconv.Itoa(stat.Rebounds),
		strconv.Itoa(stat.Assists),
		strconv.Itoa(stat.Steals),
		strconv.Itoa(stat.Blocks),
		strconv.Itoa(stat.Turnovers),
		strconv.Itoa(stat.FGM),
		strconv.Itoa(stat.FGA),
		strconv.Itoa(stat.TPM),
		strconv.Itoa(stat.TPA),
		strconv.Itoa(stat.FTM),
		strconv.Itoa(stat.FTA),
	}
}
