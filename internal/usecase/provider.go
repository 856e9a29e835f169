package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/domain/rawdata"
	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
)

// StatsProvider is a third-party statistics API.
type StatsProvider interface {
	Name() string
	FetchTeamCatalog(ctx context.Context) ([]ExternalTeam, error)
	FetchTeam(ctx context.Context, teamID string) (ExternalTeam, error)
	FetchSchedule(ctx context.Context, teamID string, seasonYear int) ([]ExternalEvent, error)
	FetchBoxScore(ctx context.Context, eventID string) (ExternalBoxScore, error)
}

type ExternalTeam struct {
	ID               string
	DisplayName      string
	ShortDisplayName string
	Abbreviation     string
	Location         string
	Name             string
	Slug             string
	Conference       string
}

// Keys lists the values an exact team lookup may match.
func (t ExternalTeam) Keys() []string {
	return []string{t.ID, t.DisplayName, t.ShortDisplayName, t.Abbreviation, t.Location, t.Name}
}

// ToTeam maps the provider row to the stored team. The slug falls back to the
// short display name, the display name and finally the id.
func (t ExternalTeam) ToTeam() team.Team {
	name := firstNonEmpty(t.DisplayName, t.Name, t.ShortDisplayName, t.ID)
	return team.Team{
		ID:         strings.TrimSpace(t.ID),
		Name:       name,
		Slug:       firstNonEmpty(t.Slug, t.ShortDisplayName, t.DisplayName, t.ID),
		Conference: strings.TrimSpace(t.Conference),
	}
}

type ExternalEvent struct {
	ID          string
	Date        string
	HomeTeam    string
	AwayTeam    string
	HomeTeamID  string
	AwayTeamID  string
	StatusLabel string
	Lifecycle   game.Lifecycle
	// SeasonYear is zero when the provider does not report one.
	SeasonYear int
}

func (e ExternalEvent) IsCompleted() bool {
	return e.Lifecycle == game.LifecycleCompleted
}

// ToGame maps the event to a stored game for the requested season.
func (e ExternalEvent) ToGame(seasonYear int) game.Game {
	status := e.Lifecycle.Status()
	if status == "" {
		status = game.NormalizeStatus(e.StatusLabel)
	}
	return game.Game{
		ID:         e.ID,
		Date:       e.Date,
		HomeTeam:   e.HomeTeam,
		AwayTeam:   e.AwayTeam,
		Status:     status,
		SeasonYear: seasonYear,
	}
}

// ExternalStatLine is one normalized athlete row. Line.PlayerID carries the
// provider id (or the display name for weak identities); Line.GameID is the event id.
type ExternalStatLine struct {
	TeamID   string
	TeamName string
	Player   player.Ref
	Line     playerstats.Line
}

type ExternalBoxScore struct {
	EventID     string
	Lines       []ExternalStatLine
	SkippedRows int
	Raw         rawdata.Payload
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if v := strings.TrimSpace(item); v != "" {
			return v
		}
	}
	return ""
}
