package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/domain/rawdata"
	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
	"github.com/riskibarqy/cbb-tracker/internal/domain/watchlist"
	"github.com/riskibarqy/cbb-tracker/internal/platform/id"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

var (
	inputValidateOnce sync.Once
	inputValidator    *validator.Validate
)

func validateInput(v any) error {
	inputValidateOnce.Do(func() {
		inputValidator = validator.New()
	})
	if err := inputValidator.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

type WatchlistSyncInput struct {
	SeasonYear int               `validate:"gt=0"`
	Players    []watchlist.Entry `validate:"dive"`
}

type BulkSyncInput struct {
	SeasonYear  int `validate:"gt=0"`
	Conferences []string
	// MaxTeams caps the run after ordering by name; zero means no cap.
	MaxTeams int `validate:"gte=0"`
}

type TeamSyncInput struct {
	Team       string `validate:"required"`
	SeasonYear int    `validate:"gt=0"`
	// TrackedNames limits stored lines to matching players of the team.
	// Empty stores every line of both sides.
	TrackedNames []string
}

const (
	FailureScopeTeam  = "team"
	FailureScopeEvent = "event"
)

type SyncFailure struct {
	Scope   string `json:"scope"`
	Team    string `json:"team"`
	TeamID  string `json:"team_id,omitempty"`
	EventID string `json:"event_id,omitempty"`
	Message string `json:"message"`
}

type SyncResult struct {
	RunID             string        `json:"run_id"`
	SeasonYear        int           `json:"season_year"`
	TeamsProcessed    int           `json:"teams_processed"`
	TeamsFailed       int           `json:"teams_failed"`
	GamesRecorded     int           `json:"games_recorded"`
	GamesCompleted    int           `json:"games_completed"`
	StatLinesWritten  int           `json:"stat_lines_written"`
	EventsFailed      int           `json:"events_failed"`
	EventsOutOfSeason int           `json:"events_out_of_season"`
	WeakIdentities    int           `json:"weak_identities"`
	UnmatchedNames    []string      `json:"unmatched_names,omitempty"`
	Failures          []SyncFailure `json:"failures,omitempty"`
	DurationMs        int64         `json:"duration_ms"`
}

// Summary renders the aggregate counts on one line.
func (r SyncResult) Summary() string {
	return fmt.Sprintf(
		"run=%s season=%d teams=%d (failed %d) games=%d completed=%d stat_lines=%d events_failed=%d out_of_season=%d weak_ids=%d",
		r.RunID, r.SeasonYear, r.TeamsProcessed, r.TeamsFailed, r.GamesRecorded, r.GamesCompleted,
		r.StatLinesWritten, r.EventsFailed, r.EventsOutOfSeason, r.WeakIdentities,
	)
}

type SyncConfig struct {
	ArchiveRawPayloads bool
}

// SyncRepositories groups the stores written by a sync.
type SyncRepositories struct {
	Teams   team.Repository
	Players player.Repository
	Games   game.Repository
	Stats   playerstats.Repository
	Raw     rawdata.Repository
}

// SyncService runs strictly sequentially: one team, one event and one write
// at a time. Outbound pacing lives in the provider clients.
type SyncService struct {
	provider StatsProvider
	resolver *ResolverService
	schedule *ScheduleService
	repos    SyncRepositories
	ids      id.Generator
	cfg      SyncConfig
	logger   *logging.Logger
}

func NewSyncService(
	provider StatsProvider,
	resolver *ResolverService,
	schedule *ScheduleService,
	repos SyncRepositories,
	ids id.Generator,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewRunIDGenerator()
	}

	return &SyncService{
		provider: provider,
		resolver: resolver,
		schedule: schedule,
		repos:    repos,
		ids:      ids,
		cfg:      cfg,
		logger:   logger,
	}
}

// teamTarget is one unit of work. tracked nil means every line is stored.
type teamTarget struct {
	label   string
	team    team.Team
	tracked []string
}

type syncRun struct {
	result  SyncResult
	logger  *logging.Logger
	matched map[string]struct{}
}

// SyncWatchlist syncs every team named in the watchlist, storing only lines
// of tracked players on that team.
func (s *SyncService) SyncWatchlist(ctx context.Context, input WatchlistSyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncWatchlist",
		attribute.Int("season.year", input.SeasonYear),
		attribute.Int("players.count", len(input.Players)),
	)
	defer span.End()

	if err := validateInput(input); err != nil {
		return SyncResult{}, err
	}
	if len(input.Players) == 0 {
		return SyncResult{}, fmt.Errorf("%w: watchlist has no players", ErrInvalidInput)
	}

	run, err := s.newRun(input.SeasonYear)
	if err != nil {
		return SyncResult{}, err
	}
	started := time.Now()

	order, grouped := watchlist.List{Players: input.Players}.ByTeam()
	for _, label := range order {
		if err := ctx.Err(); err != nil {
			return s.finish(run, started), err
		}
		s.resolveAndRun(ctx, run, label, grouped[label], input.SeasonYear)
	}

	for _, item := range input.Players {
		if _, ok := run.matched[normalizeKey(item.Name)]; !ok {
			run.result.UnmatchedNames = append(run.result.UnmatchedNames, item.Name)
		}
	}

	result := s.finish(run, started)
	run.logger.InfoContext(ctx, "watchlist sync completed", "summary", result.Summary())
	return result, nil
}

// SyncTeam syncs a single team given by id or name.
func (s *SyncService) SyncTeam(ctx context.Context, input TeamSyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncTeam",
		attribute.String("team.query", input.Team),
		attribute.Int("season.year", input.SeasonYear),
	)
	defer span.End()

	if err := validateInput(input); err != nil {
		return SyncResult{}, err
	}

	run, err := s.newRun(input.SeasonYear)
	if err != nil {
		return SyncResult{}, err
	}
	started := time.Now()

	var tracked []string
	for _, name := range input.TrackedNames {
		if v := strings.TrimSpace(name); v != "" {
			tracked = append(tracked, v)
		}
	}
	s.resolveAndRun(ctx, run, strings.TrimSpace(input.Team), tracked, input.SeasonYear)

	result := s.finish(run, started)
	run.logger.InfoContext(ctx, "team sync completed", "summary", result.Summary())
	return result, nil
}

// SyncAll walks the provider catalog, optionally narrowed by conference and
// capped by MaxTeams, and stores every line of every completed game.
func (s *SyncService) SyncAll(ctx context.Context, input BulkSyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncAll",
		attribute.Int("season.year", input.SeasonYear),
		attribute.Int("max_teams", input.MaxTeams),
	)
	defer span.End()

	if err := validateInput(input); err != nil {
		return SyncResult{}, err
	}

	run, err := s.newRun(input.SeasonYear)
	if err != nil {
		return SyncResult{}, err
	}
	started := time.Now()

	catalog, err := s.resolver.Catalog(ctx)
	if err != nil {
		recordSpanError(span, err)
		return s.finish(run, started), err
	}
	targets := FilterTeams(catalog, input.Conferences, input.MaxTeams)
	run.logger.InfoContext(ctx, "bulk sync started",
		"catalog_teams", len(catalog),
		"selected_teams", len(targets),
		"conferences", strings.Join(input.Conferences, ","),
	)

	for idx, item := range targets {
		if err := ctx.Err(); err != nil {
			return s.finish(run, started), err
		}
		target := teamTarget{label: item.ToTeam().Name, team: item.ToTeam()}
		run.logger.InfoContext(ctx, "sync team",
			"position", idx+1,
			"of", len(targets),
			"team_id", target.team.ID,
			"team", target.label,
		)
		s.runTeamIsolated(ctx, run, target, input.SeasonYear)
	}

	result := s.finish(run, started)
	run.logger.InfoContext(ctx, "bulk sync completed", "summary", result.Summary())
	return result, nil
}

func (s *SyncService) newRun(seasonYear int) (*syncRun, error) {
	runID, err := s.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}
	return &syncRun{
		result:  SyncResult{RunID: runID, SeasonYear: seasonYear},
		logger:  s.logger.With("run_id", runID, "provider", s.provider.Name()),
		matched: make(map[string]struct{}),
	}, nil
}

func (s *SyncService) finish(run *syncRun, started time.Time) SyncResult {
	run.result.DurationMs = time.Since(started).Milliseconds()
	return run.result
}

func (s *SyncService) resolveAndRun(ctx context.Context, run *syncRun, label string, tracked []string, seasonYear int) {
	resolved, err := s.resolver.ResolveTeam(ctx, label)
	if err != nil {
		s.teamFailed(ctx, run, teamTarget{label: label}, fmt.Errorf("resolve team: %w", err))
		return
	}
	s.runTeamIsolated(ctx, run, teamTarget{label: label, team: resolved, tracked: tracked}, seasonYear)
}

func (s *SyncService) runTeamIsolated(ctx context.Context, run *syncRun, target teamTarget, seasonYear int) {
	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = s.runTeam(ctx, run, target, seasonYear)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}
	if err != nil {
		s.teamFailed(ctx, run, target, err)
		return
	}
	run.result.TeamsProcessed++
}

func (s *SyncService) teamFailed(ctx context.Context, run *syncRun, target teamTarget, err error) {
	run.result.TeamsFailed++
	run.result.Failures = append(run.result.Failures, SyncFailure{
		Scope:   FailureScopeTeam,
		Team:    target.label,
		TeamID:  target.team.ID,
		Message: err.Error(),
	})
	run.logger.WarnContext(ctx, "team sync failed, continuing",
		"team", target.label,
		"team_id", target.team.ID,
		"error", err,
	)
}

// runTeam writes team -> games -> players -> stat lines in that order.
func (s *SyncService) runTeam(ctx context.Context, run *syncRun, target teamTarget, seasonYear int) error {
	if err := s.repos.Teams.Insert(ctx, target.team); err != nil {
		return fmt.Errorf("store team: %w", err)
	}

	events, stats, err := s.schedule.Events(ctx, target.team.ID, seasonYear)
	if err != nil {
		return err
	}
	run.result.EventsOutOfSeason += stats.OutOfSeason
	run.logger.InfoContext(ctx, "schedule loaded",
		"team", target.team.Name,
		"team_id", target.team.ID,
		"events", len(events),
		"completed", stats.Completed,
		"out_of_season", stats.OutOfSeason,
	)

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.repos.Games.Upsert(ctx, event.ToGame(seasonYear)); err != nil {
			s.eventFailed(ctx, run, target, event.ID, fmt.Errorf("store game: %w", err))
			continue
		}
		run.result.GamesRecorded++
		if !event.IsCompleted() {
			continue
		}
		run.result.GamesCompleted++

		var eventErr error
		var catcher panics.Catcher
		catcher.Try(func() {
			eventErr = s.ingestEvent(ctx, run, target, event)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			eventErr = recovered.AsError()
		}
		if eventErr != nil {
			s.eventFailed(ctx, run, target, event.ID, eventErr)
		}
	}
	return nil
}

func (s *SyncService) eventFailed(ctx context.Context, run *syncRun, target teamTarget, eventID string, err error) {
	run.result.EventsFailed++
	run.result.Failures = append(run.result.Failures, SyncFailure{
		Scope:   FailureScopeEvent,
		Team:    target.label,
		TeamID:  target.team.ID,
		EventID: eventID,
		Message: err.Error(),
	})
	run.logger.WarnContext(ctx, "event sync failed, continuing",
		"team_id", target.team.ID,
		"event_id", eventID,
		"error", err,
	)
}

func (s *SyncService) ingestEvent(ctx context.Context, run *syncRun, target teamTarget, event ExternalEvent) error {
	box, err := s.provider.FetchBoxScore(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("fetch box score: %w", err)
	}
	if box.SkippedRows > 0 {
		run.logger.DebugContext(ctx, "box score rows skipped", "event_id", event.ID, "skipped", box.SkippedRows)
	}

	if s.cfg.ArchiveRawPayloads && s.repos.Raw != nil && box.Raw.PayloadJSON != "" {
		if err := s.repos.Raw.UpsertMany(ctx, []rawdata.Payload{box.Raw}); err != nil {
			run.logger.WarnContext(ctx, "archive raw payload failed", "event_id", event.ID, "error", err)
		}
	}

	knownTeams := map[string]struct{}{target.team.ID: {}}
	for _, line := range selectLines(box.Lines, target, run.matched) {
		teamID := line.TeamID
		if teamID == "" {
			teamID = target.team.ID
		}
		if _, ok := knownTeams[teamID]; !ok {
			opponent := team.Team{ID: teamID, Name: firstNonEmpty(line.TeamName, teamID)}
			if err := s.repos.Teams.Insert(ctx, opponent); err != nil {
				return fmt.Errorf("store team id=%s: %w", teamID, err)
			}
			knownTeams[teamID] = struct{}{}
		}

		ref := line.Player
		if ref.IsWeak() {
			run.result.WeakIdentities++
			run.logger.WarnContext(ctx, "player without provider id, using weak identity",
				"player", ref.Name,
				"team_id", teamID,
				"event_id", event.ID,
			)
		}
		stored, err := s.repos.Players.Insert(ctx, player.Player{
			ID:     ref.StorageID(teamID),
			Name:   ref.Name,
			TeamID: teamID,
			Kind:   ref.Kind,
		})
		if err != nil {
			return fmt.Errorf("store player %q: %w", ref.Name, err)
		}

		stat := line.Line
		stat.PlayerID = stored.ID
		stat.GameID = event.ID
		if err := s.repos.Stats.Upsert(ctx, stat); err != nil {
			return fmt.Errorf("store stat line player_id=%s: %w", stored.ID, err)
		}
		run.result.StatLinesWritten++
	}
	return nil
}

// selectLines applies the tracked-name filter. Lines without a team belong
// to the synced team only when the filter is on.
func selectLines(lines []ExternalStatLine, target teamTarget, matched map[string]struct{}) []ExternalStatLine {
	if target.tracked == nil {
		return lines
	}

	candidates := make([]RosterEntry, 0, len(lines))
	for _, line := range lines {
		teamID := line.TeamID
		if teamID == "" {
			teamID = target.team.ID
		}
		candidates = append(candidates, RosterEntry{PlayerID: line.Player.ID, Name: line.Player.Name, TeamID: teamID})
	}

	keep := make(map[string]struct{})
	for name, entries := range MatchRoster(target.tracked, candidates, target.team.ID) {
		matched[normalizeKey(name)] = struct{}{}
		for _, entry := range entries {
			keep[entry.PlayerID] = struct{}{}
		}
	}

	out := make([]ExternalStatLine, 0, len(keep))
	for _, line := range lines {
		if line.TeamID != "" && line.TeamID != target.team.ID {
			continue
		}
		if _, ok := keep[line.Player.ID]; ok {
			out = append(out, line)
		}
	}
	return out
}
