package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportGenerate(t *testing.T) {
	t.Parallel()

	store, query := newQueryFixture(t)
	svc := usecase.NewReportService(query, store.Games, store.Stats, logging.NewNop())
	outDir := filepath.Join(t.TempDir(), "site")

	result, err := svc.Generate(context.Background(), usecase.ReportInput{
		Names:      []string{"Cooper Flagg", "Tyrese Proctor", "Ghost Player"},
		SeasonYear: 2026,
		OutDir:     outDir,
		Now:        time.Date(2025, 11, 13, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Players)
	require.Len(t, result.Highlights, 1)
	assert.Equal(t, "Cooper Flagg (Duke Blue Devils) - 21p 5r 5a vs Duke Blue Devils @ Army Black Knights", result.Highlights[0])

	index, err := os.ReadFile(result.IndexPath)
	require.NoError(t, err)
	html := string(index)
	assert.Contains(t, html, "Completed games: 3")
	assert.Contains(t, html, "<strong>20.3</strong> PPG")
	assert.Contains(t, html, "Played 2025-11-12")
	assert.Contains(t, html, "<em>No new game in last 24h</em>")
	assert.Contains(t, html, "<h2>Ghost Player</h2>")

	summary, err := os.ReadFile(result.SummaryPath)
	require.NoError(t, err)
	assert.Equal(t, "Daily update:\n"+result.Highlights[0], string(summary))
}

func TestReportGenerate_NoRecentGames(t *testing.T) {
	t.Parallel()

	store, query := newQueryFixture(t)
	svc := usecase.NewReportService(query, store.Games, store.Stats, logging.NewNop())

	result, err := svc.Generate(context.Background(), usecase.ReportInput{
		Names:      []string{"Cooper Flagg"},
		SeasonYear: 2026,
		OutDir:     t.TempDir(),
		Now:        time.Date(2026, 1, 20, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Highlights)

	summary, err := os.ReadFile(result.SummaryPath)
	require.NoError(t, err)
	assert.Equal(t, "Daily update:\nNo new games in last 24h.", string(summary))
}

func TestReportGenerate_RequiresOutDir(t *testing.T) {
	t.Parallel()

	store, query := newQueryFixture(t)
	svc := usecase.NewReportService(query, store.Games, store.Stats, logging.NewNop())

	_, err := svc.Generate(context.Background(), usecase.ReportInput{SeasonYear: 2026})
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}
