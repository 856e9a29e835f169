package ncaa

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/cbb-tracker/external/httpjson"
	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/domain/rawdata"
	"github.com/riskibarqy/cbb-tracker/internal/domain/season"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
)

const (
	DefaultBaseURL      = "https://ncaa-api.henrygd.me"
	DefaultSport        = "basketball-men"
	DefaultRequestDelay = 200 * time.Millisecond
	ProviderName        = "ncaa"
)

type ClientConfig struct {
	HTTPClient   *http.Client
	BaseURL      string
	Sport        string
	UserAgent    string
	Timeout      time.Duration
	RequestDelay time.Duration
	Logger       *logging.Logger
}

// Client talks to the ncaa-api mirror. Team ids are school slugs.
type Client struct {
	baseURL string
	sport   string
	fetcher *httpjson.Fetcher
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	sport := strings.TrimSpace(cfg.Sport)
	if sport == "" {
		sport = DefaultSport
	}

	return &Client{
		baseURL: baseURL,
		sport:   sport,
		fetcher: httpjson.NewFetcher(httpjson.Config{
			Provider:     ProviderName,
			HTTPClient:   cfg.HTTPClient,
			UserAgent:    cfg.UserAgent,
			Timeout:      cfg.Timeout,
			RequestDelay: cfg.RequestDelay,
			Logger:       logger,
		}),
		logger: logger,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

func (c *Client) FetchTeamCatalog(ctx context.Context) ([]usecase.ExternalTeam, error) {
	doc, _, err := c.fetcher.Get(ctx, c.baseURL+"/schools-index")
	if err != nil {
		return nil, fmt.Errorf("fetch schools index: %w", err)
	}
	rows, _ := doc.([]any)
	out := make([]usecase.ExternalTeam, 0, len(rows))
	for _, raw := range rows {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		slug := httpjson.String(item, "slug")
		if slug == "" {
			continue
		}
		out = append(out, usecase.ExternalTeam{
			ID:               slug,
			DisplayName:      httpjson.FirstNonEmpty(httpjson.String(item, "name"), slug),
			ShortDisplayName: httpjson.String(item, "name"),
			Name:             httpjson.String(item, "long"),
			Slug:             slug,
		})
	}
	return out, nil
}

// FetchTeam looks the slug up in the schools index; the API has no
// single-school endpoint.
func (c *Client) FetchTeam(ctx context.Context, teamID string) (usecase.ExternalTeam, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return usecase.ExternalTeam{}, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput)
	}
	teams, err := c.FetchTeamCatalog(ctx)
	if err != nil {
		return usecase.ExternalTeam{}, err
	}
	for _, item := range teams {
		if strings.EqualFold(item.ID, teamID) {
			return item, nil
		}
	}
	return usecase.ExternalTeam{}, &usecase.ResolutionError{Provider: ProviderName, Query: teamID}
}

// FetchSchedule tries the season-scoped path first and falls back to the
// current-season path.
func (c *Client) FetchSchedule(ctx context.Context, teamID string, seasonYear int) ([]usecase.ExternalEvent, error) {
	slug := url.PathEscape(strings.TrimSpace(teamID))
	paths := make([]string, 0, 2)
	if seasonYear > 0 {
		paths = append(paths, fmt.Sprintf("/schools/%s/%s/%s/schedule", slug, c.sport, season.Label(seasonYear)))
	}
	paths = append(paths, fmt.Sprintf("/schools/%s/%s/schedule", slug, c.sport))

	var errs []error
	for _, path := range paths {
		doc, _, err := c.fetcher.GetObject(ctx, c.baseURL+path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(httpjson.Slice(doc, "games")) == 0 {
			continue
		}
		return parseSchedule(doc), nil
	}
	if len(errs) == len(paths) {
		return nil, fmt.Errorf("fetch schedule team=%s season=%d: %w", teamID, seasonYear, errors.Join(errs...))
	}
	return nil, nil
}

func (c *Client) FetchBoxScore(ctx context.Context, eventID string) (usecase.ExternalBoxScore, error) {
	eventID = strings.TrimSpace(eventID)
	doc, raw, err := c.fetcher.GetObject(ctx, c.baseURL+"/game/"+url.PathEscape(eventID)+"/boxscore")
	if err != nil {
		return usecase.ExternalBoxScore{}, fmt.Errorf("fetch boxscore game=%s: %w", eventID, err)
	}

	lines, skipped := parseBoxScore(eventID, doc)
	return usecase.ExternalBoxScore{
		EventID:     eventID,
		Lines:       lines,
		SkippedRows: skipped,
		Raw: rawdata.Payload{
			Source:      ProviderName,
			EntityType:  "boxscore",
			EntityKey:   eventID,
			PayloadJSON: string(raw),
		}.WithHash(),
	}, nil
}

func parseSchedule(doc map[string]any) []usecase.ExternalEvent {
	games := httpjson.Slice(doc, "games")
	out := make([]usecase.ExternalEvent, 0, len(games))
	for _, raw := range games {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if nested := httpjson.Map(item, "game"); nested != nil {
			item = nested
		}
		id := httpjson.FirstNonEmpty(httpjson.String(item, "gameID"), httpjson.String(item, "gameId"), httpjson.String(item, "id"))
		if id == "" {
			continue
		}
		home := httpjson.Map(item, "home")
		away := httpjson.Map(item, "away")
		state := httpjson.FirstNonEmpty(httpjson.String(item, "gameState"), httpjson.String(item, "status"))
		out = append(out, usecase.ExternalEvent{
			ID:          id,
			Date:        httpjson.FirstNonEmpty(httpjson.String(item, "startDate"), httpjson.String(item, "date")),
			HomeTeam:    sideName(home),
			AwayTeam:    sideName(away),
			HomeTeamID:  sideID(home),
			AwayTeamID:  sideID(away),
			StatusLabel: state,
			Lifecycle:   classifyState(state),
		})
	}
	return out
}

func classifyState(state string) game.Lifecycle {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case "final", "post", "completed":
		return game.LifecycleCompleted
	case "live", "in", "in_progress":
		return game.LifecycleInProgress
	case "pre", "scheduled", "":
		return game.LifecycleScheduled
	case "postponed":
		return game.LifecyclePostponed
	case "canceled", "cancelled":
		return game.LifecycleCanceled
	default:
		return game.LifecycleUnknown
	}
}

func parseBoxScore(eventID string, doc map[string]any) ([]usecase.ExternalStatLine, int) {
	var (
		lines   []usecase.ExternalStatLine
		skipped int
	)
	for _, side := range []string{"home", "away"} {
		sideDoc := httpjson.Map(doc, side)
		teamID := sideID(sideDoc)
		teamName := sideName(sideDoc)
		for _, raw := range httpjson.Slice(sideDoc, "players") {
			row, ok := raw.(map[string]any)
			if !ok {
				skipped++
				continue
			}
			name := httpjson.String(row, "name")
			if name == "" {
				skipped++
				continue
			}
			ref := player.ProviderRef(httpjson.FirstNonEmpty(httpjson.String(row, "personId"), httpjson.String(row, "id")), name)
			lines = append(lines, usecase.ExternalStatLine{
				TeamID:   teamID,
				TeamName: teamName,
				Player:   ref,
				Line: playerstats.Line{
					PlayerID:  ref.ID,
					GameID:    eventID,
					Minutes:   httpjson.String(row, "min"),
					Points:    httpjson.Int(row["pts"]),
					Rebounds:  httpjson.Int(row["reb"]),
					Assists:   httpjson.Int(row["ast"]),
					Steals:    httpjson.Int(row["stl"]),
					Blocks:    httpjson.Int(row["blk"]),
					Turnovers: httpjson.Int(row["to"]),
					FGM:       httpjson.Int(row["fgm"]),
					FGA:       httpjson.Int(row["fga"]),
					TPM:       httpjson.Int(row["tpm"]),
					TPA:       httpjson.Int(row["tpa"]),
					FTM:       httpjson.Int(row["ftm"]),
					FTA:       httpjson.Int(row["fta"]),
				},
			})
		}
	}
	return lines, skipped
}

func sideName(side map[string]any) string {
	names := httpjson.Map(side, "names")
	return httpjson.FirstNonEmpty(httpjson.String(names, "short"), httpjson.String(names, "full"), httpjson.String(side, "name"))
}

// sideID is the school slug when the payload carries one.
func sideID(side map[string]any) string {
	names := httpjson.Map(side, "names")
	return httpjson.FirstNonEmpty(httpjson.String(names, "seo"), httpjson.String(side, "seoname"), httpjson.String(side, "slug"))
}
