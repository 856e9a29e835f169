package espn

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/cbb-tracker/external/httpjson"
	"github.com/riskibarqy/cbb-tracker/internal/domain/rawdata"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
)

const (
	DefaultBaseURL      = "https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"
	DefaultRequestDelay = 50 * time.Millisecond
	ProviderName        = "espn"

	// Division I group id on the teams endpoint.
	divisionOneGroup = "50"
	catalogLimit     = "1000"
)

type ClientConfig struct {
	HTTPClient   *http.Client
	BaseURL      string
	UserAgent    string
	Timeout      time.Duration
	RequestDelay time.Duration
	Logger       *logging.Logger
}

type Client struct {
	baseURL string
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

	return &Client{
		baseURL: baseURL,
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

// FetchJSON issues one GET against the provider and returns the decoded object.
func (c *Client) FetchJSON(ctx context.Context, path string, query url.Values) (map[string]any, []byte, error) {
	return c.fetcher.GetObject(ctx, c.buildURL(path, query))
}

func (c *Client) FetchTeamCatalog(ctx context.Context) ([]usecase.ExternalTeam, error) {
	query := url.Values{}
	query.Set("groups", divisionOneGroup)
	query.Set("limit", catalogLimit)

	doc, _, err := c.FetchJSON(ctx, "/teams", query)
	if err != nil {
		return nil, fmt.Errorf("fetch team catalog: %w", err)
	}
	return parseCatalog(doc), nil
}

func (c *Client) FetchTeam(ctx context.Context, teamID string) (usecase.ExternalTeam, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return usecase.ExternalTeam{}, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput)
	}

	doc, _, err := c.FetchJSON(ctx, "/teams/"+url.PathEscape(teamID), nil)
	if err != nil {
		return usecase.ExternalTeam{}, fmt.Errorf("fetch team id=%s: %w", teamID, err)
	}
	item := parseTeam(httpjson.Map(doc, "team"))
	if item.ID == "" {
		item.ID = teamID
	}
	return item, nil
}

func (c *Client) FetchSchedule(ctx context.Context, teamID string, seasonYear int) ([]usecase.ExternalEvent, error) {
	query := url.Values{}
	if seasonYear > 0 {
		query.Set("season", strconv.Itoa(seasonYear))
	}

	doc, _, err := c.FetchJSON(ctx, "/teams/"+url.PathEscape(strings.TrimSpace(teamID))+"/schedule", query)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule team=%s season=%d: %w", teamID, seasonYear, err)
	}
	return parseSchedule(doc), nil
}

func (c *Client) FetchBoxScore(ctx context.Context, eventID string) (usecase.ExternalBoxScore, error) {
	query := url.Values{}
	query.Set("event", strings.TrimSpace(eventID))

	doc, raw, err := c.FetchJSON(ctx, "/summary", query)
	if err != nil {
		return usecase.ExternalBoxScore{}, fmt.Errorf("fetch summary event=%s: %w", eventID, err)
	}

	box := NormalizeBoxScore(eventID, doc)
	if box.SkippedRows > 0 {
		c.logger.DebugContext(ctx, "skipped malformed box score rows", "event_id", eventID, "skipped", box.SkippedRows)
	}
	return usecase.ExternalBoxScore{
		EventID:     eventID,
		Lines:       box.Lines,
		SkippedRows: box.SkippedRows,
		Raw: rawdata.Payload{
			Source:      ProviderName,
			EntityType:  "summary",
			EntityKey:   eventID,
			PayloadJSON: string(raw),
		}.WithHash(),
	}, nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}
