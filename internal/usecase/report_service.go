package usecase

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

const (
	reportRecentGames = 10
	reportIndexFile   = "index.html"
	reportSummaryFile = "summary.txt"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!doctype html><html><head><meta charset="utf-8">
<title>Daily Player Report</title>
<style>body{font-family:system-ui,Arial;margin:24px;} table{border-collapse:collapse;width:100%;margin:12px 0}
th,td{border:1px solid #ddd;padding:6px;text-align:center} th{background:#f2f2f2}</style></head>
<body>
<h1>Daily Player Report</h1>
<p>Updated: {{.Updated}} &bull; Season {{.SeasonYear}} &bull; Completed games: {{.CompletedGames}}</p>
{{- range .Blocks}}
{{- if not .Found}}
<h2>{{.Query}}</h2><p><em>Not found in DB yet (maybe no completed games)</em></p>
{{- else}}
<h2>{{.PlayerName}} &mdash; {{.TeamName}}</h2>
<p>{{if .Highlight}}{{.Highlight}}{{else}}<em>No new game in last 24h</em>{{end}}</p>
<p>Season: <strong>{{printf "%.1f" .Average.PPG}}</strong> PPG / <strong>{{printf "%.1f" .Average.RPG}}</strong> RPG / <strong>{{printf "%.1f" .Average.APG}}</strong> APG (GP {{.Average.GamesPlayed}})</p>
<table><thead><tr><th>DATE</th><th>MATCHUP</th><th>MIN</th><th>PTS</th><th>REB</th><th>AST</th><th>STL</th><th>BLK</th></tr></thead><tbody>
{{- range .Games}}
<tr><td>{{.DateOnly}}</td><td>{{.Matchup}}</td><td>{{.Line.Minutes}}</td><td>{{.Line.Points}}</td><td>{{.Line.Rebounds}}</td><td>{{.Line.Assists}}</td><td>{{.Line.Steals}}</td><td>{{.Line.Blocks}}</td></tr>
{{- end}}
</tbody></table>
{{- end}}
{{- else}}
<p><em>No players in watchlist.</em></p>
{{- end}}
</body></html>
`))

type ReportInput struct {
	Names      []string
	SeasonYear int
	OutDir     string
	// Now defaults to time.Now.
	Now time.Time
}

type ReportResult struct {
	IndexPath   string
	SummaryPath string
	Players     int
	Highlights  []string
}

type reportBlock struct {
	Query      string
	Found      bool
	PlayerName string
	TeamName   string
	Highlight  string
	Average    playerstats.SeasonAverage
	Games      []playerstats.GameLogEntry
}

type reportPage struct {
	Updated        string
	SeasonYear     int
	CompletedGames int
	Blocks         []reportBlock
}

type ReportService struct {
	query     *QueryService
	gameRepo  game.Repository
	statsRepo playerstats.Repository
	logger    *logging.Logger
}

func NewReportService(query *QueryService, gameRepo game.Repository, statsRepo playerstats.Repository, logger *logging.Logger) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportService{
		query:     query,
		gameRepo:  gameRepo,
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// Generate writes index.html and summary.txt into OutDir.
func (s *ReportService) Generate(ctx context.Context, input ReportInput) (ReportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Generate")
	defer span.End()

	if input.SeasonYear <= 0 {
		return ReportResult{}, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}
	outDir := strings.TrimSpace(input.OutDir)
	if outDir == "" {
		return ReportResult{}, fmt.Errorf("%w: output directory is required", ErrInvalidInput)
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	completed, err := s.gameRepo.CountBySeason(ctx, input.SeasonYear, true)
	if err != nil {
		recordSpanError(span, err)
		return ReportResult{}, fmt.Errorf("count completed games: %w", err)
	}

	logs, err := s.query.GameLogs(ctx, GameLogQuery{
		Names:      input.Names,
		SeasonYear: input.SeasonYear,
		Last:       reportRecentGames,
	})
	if err != nil {
		recordSpanError(span, err)
		return ReportResult{}, err
	}

	page := reportPage{
		Updated:        now.Format("2006-01-02T15:04:05") + "Z",
		SeasonYear:     input.SeasonYear,
		CompletedGames: completed,
		Blocks:         make([]reportBlock, 0, len(logs)),
	}
	result := ReportResult{}
	for _, item := range logs {
		block := reportBlock{Query: item.Query, Found: item.Found}
		if !item.Found {
			page.Blocks = append(page.Blocks, block)
			continue
		}

		block.PlayerName = item.Player.Name
		block.TeamName = item.TeamName
		block.Games = item.Games
		averages, err := s.statsRepo.SeasonAverages(ctx, playerstats.AveragesFilter{
			SeasonYear: input.SeasonYear,
			PlayerID:   item.Player.ID,
		})
		if err != nil {
			recordSpanError(span, err)
			return ReportResult{}, fmt.Errorf("season averages player_id=%s: %w", item.Player.ID, err)
		}
		if len(averages) > 0 {
			block.Average = averages[0]
		}

		if len(item.Games) > 0 && playedRecently(item.Games[0], now) {
			g := item.Games[0]
			detail := fmt.Sprintf("%dp %dr %da vs %s", g.Line.Points, g.Line.Rebounds, g.Line.Assists, g.Matchup())
			block.Highlight = fmt.Sprintf("Played %s: %s", g.DateOnly(), detail)
			result.Highlights = append(result.Highlights, fmt.Sprintf("%s (%s) - %s", item.Player.Name, item.TeamName, detail))
		}
		result.Players++
		page.Blocks = append(page.Blocks, block)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ReportResult{}, fmt.Errorf("create report dir: %w", err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := reportTemplate.Execute(buf, page); err != nil {
		return ReportResult{}, fmt.Errorf("render report: %w", err)
	}
	result.IndexPath = filepath.Join(outDir, reportIndexFile)
	if err := os.WriteFile(result.IndexPath, buf.B, 0o644); err != nil {
		return ReportResult{}, fmt.Errorf("write report: %w", err)
	}

	buf.Reset()
	_, _ = buf.WriteString("Daily update:\n")
	if len(result.Highlights) == 0 {
		_, _ = buf.WriteString("No new games in last 24h.")
	} else {
		_, _ = buf.WriteString(strings.Join(result.Highlights, "\n"))
	}
	result.SummaryPath = filepath.Join(outDir, reportSummaryFile)
	if err := os.WriteFile(result.SummaryPath, buf.B, 0o644); err != nil {
		return ReportResult{}, fmt.Errorf("write summary: %w", err)
	}

	s.logger.InfoContext(ctx, "report generated",
		"index", result.IndexPath,
		"players", result.Players,
		"highlights", len(result.Highlights),
	)
	return result, nil
}

// playedRecently reports whether the game date is today or yesterday
// relative to now, comparing calendar days.
func playedRecently(entry playerstats.GameLogEntry, now time.Time) bool {
	played, err := time.Parse("2006-01-02", entry.DateOnly())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.Sub(played) <= 24*time.Hour
}
