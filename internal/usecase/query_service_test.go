package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
	"github.com/riskibarqy/cbb-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSeason stores three completed Duke games and one scheduled game.
func seedSeason(t *testing.T, store *memory.Store) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, store.Teams.Insert(ctx, team.Team{ID: "150", Name: "Duke Blue Devils", Slug: "duke"}))
	_, err := store.Players.Insert(ctx, player.Player{ID: "4433", Name: "Cooper Flagg", TeamID: "150"})
	require.NoError(t, err)
	_, err = store.Players.Insert(ctx, player.Player{ID: "4434", Name: "Tyrese Proctor", TeamID: "150"})
	require.NoError(t, err)

	games := []game.Game{
		{ID: "401", Date: "2025-11-04T23:30Z", HomeTeam: "Duke Blue Devils", AwayTeam: "Maine Black Bears", Status: "final", SeasonYear: 2026},
		{ID: "402", Date: "2025-11-08T00:00Z", HomeTeam: "Duke Blue Devils", AwayTeam: "Kentucky Wildcats", Status: "post", SeasonYear: 2026},
		{ID: "403", Date: "2025-11-12T00:00Z", HomeTeam: "Army Black Knights", AwayTeam: "Duke Blue Devils", Status: "STATUS_FINAL", SeasonYear: 2026},
		{ID: "404", Date: "2025-11-20T00:00Z", HomeTeam: "Duke Blue Devils", AwayTeam: "Auburn Tigers", Status: "in", SeasonYear: 2026},
	}
	for _, item := range games {
		require.NoError(t, store.Games.Upsert(ctx, item))
	}

	lines := []playerstats.Line{
		{PlayerID: "4433", GameID: "401", Minutes: "30", Points: 18, Rebounds: 7, Assists: 4},
		{PlayerID: "4433", GameID: "402", Minutes: "34", Points: 22, Rebounds: 9, Assists: 3},
		{PlayerID: "4433", GameID: "403", Minutes: "29", Points: 21, Rebounds: 5, Assists: 5},
		{PlayerID: "4433", GameID: "404", Minutes: "12", Points: 2, Rebounds: 1},
		{PlayerID: "4434", GameID: "401", Minutes: "25", Points: 10, Rebounds: 2, Assists: 6},
	}
	for _, item := range lines {
		require.NoError(t, store.Stats.Upsert(ctx, item))
	}
}

func newQueryFixture(t *testing.T) (*memory.Store, *usecase.QueryService) {
	t.Helper()

	fx := newSyncFixture(t, usecase.SyncConfig{})
	seedSeason(t, fx.store)
	return fx.store, usecase.NewQueryService(fx.resolver, fx.store.Teams, fx.store.Stats, logging.NewNop())
}

func TestQuerySeasonAverages(t *testing.T) {
	t.Parallel()

	_, svc := newQueryFixture(t)

	items, err := svc.SeasonAverages(context.Background(), playerstats.AveragesFilter{SeasonYear: 2026, TeamID: "150"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Cooper Flagg", items[0].PlayerName)
	assert.Equal(t, "Duke Blue Devils", items[0].TeamName)
	assert.Equal(t, 3, items[0].GamesPlayed)
	assert.InDelta(t, 20.3, items[0].PPG, 0.001)
	assert.InDelta(t, 7.0, items[0].RPG, 0.001)
	assert.Equal(t, "Tyrese Proctor", items[1].PlayerName)

	_, err = svc.SeasonAverages(context.Background(), playerstats.AveragesFilter{})
	assert.True(t, errors.Is(err, usecase.ErrInvalidInput))
}

func TestQueryGameLogs(t *testing.T) {
	t.Parallel()

	_, svc := newQueryFixture(t)

	logs, err := svc.GameLogs(context.Background(), usecase.GameLogQuery{
		Names:      []string{"cooper flagg", "  ", "Nobody"},
		SeasonYear: 2026,
		Last:       2,
	})
	require.NoError(t, err)
	require.Len(t, logs, 2)

	flagg := logs[0]
	assert.True(t, flagg.Found)
	assert.Equal(t, "4433", flagg.Player.ID)
	assert.Equal(t, "Duke Blue Devils", flagg.TeamName)
	require.Len(t, flagg.Games, 2)
	assert.Equal(t, "403", flagg.Games[0].GameID)
	assert.Equal(t, "402", flagg.Games[1].GameID)
	assert.Equal(t, "Duke Blue Devils @ Army Black Knights", flagg.Games[0].Matchup())

	assert.False(t, logs[1].Found)
	assert.Equal(t, "Nobody", logs[1].Query)
}

func TestQueryGameLogs_PartialNameAndDefaultLimit(t *testing.T) {
	t.Parallel()

	store, svc := newQueryFixture(t)
	_, err := store.Players.Insert(context.Background(), player.Player{ID: "77", Name: "Someone Proctor", TeamID: "999"})
	require.NoError(t, err)

	logs, err := svc.GameLogs(context.Background(), usecase.GameLogQuery{
		Names:      []string{"proctor"},
		SeasonYear: 2026,
	})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "999", logs[0].TeamName)
	assert.Empty(t, logs[0].Games)
	assert.Len(t, logs[1].Games, 1)

	scoped, err := svc.GameLogs(context.Background(), usecase.GameLogQuery{
		Names:      []string{"proctor"},
		SeasonYear: 2026,
		TeamID:     "150",
	})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "4434", scoped[0].Player.ID)
}
