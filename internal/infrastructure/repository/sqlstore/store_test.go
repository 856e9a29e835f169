package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/domain/rawdata"
	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), Options{
		URL:         "sqlite://" + filepath.Join(t.TempDir(), "cbb.sqlite"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func seedDukeGame(t *testing.T, store *Store, status string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Teams.Insert(ctx, team.Team{ID: "150", Name: "Duke Blue Devils", Slug: "duke"}))
	_, err := store.Players.Insert(ctx, player.Player{ID: "4433", Name: "Cooper Flagg", TeamID: "150"})
	require.NoError(t, err)
	require.NoError(t, store.Games.Upsert(ctx, game.Game{
		ID:         "401",
		Date:       "2025-11-04T23:30Z",
		HomeTeam:   "Duke Blue Devils",
		AwayTeam:   "Texas Longhorns",
		Status:     status,
		SeasonYear: 2026,
	}))
}

func TestStatLineUpsertIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedDukeGame(t, store, "STATUS_FINAL")

	line := playerstats.Line{PlayerID: "4433", GameID: "401", Minutes: "30", Points: 18, Rebounds: 7, FGM: 7, FGA: 12}
	require.NoError(t, store.Stats.Upsert(ctx, line))

	line.Points = 20
	require.NoError(t, store.Stats.Upsert(ctx, line))

	count, err := store.Stats.CountByGame(ctx, "401")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	log, err := store.Stats.ListGameLog(ctx, "4433", 2026, 10)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, 20, log[0].Line.Points)
	assert.Equal(t, 7, log[0].Line.Rebounds)
	assert.Equal(t, "Texas Longhorns @ Duke Blue Devils", log[0].Matchup())
}

func TestStatLineRequiresPlayerAndGame(t *testing.T) {
	store := openTestStore(t)

	err := store.Stats.Upsert(context.Background(), playerstats.Line{PlayerID: "missing", GameID: "missing", Points: 3})
	require.Error(t, err)
}

func TestTeamInsertKeepsFirstWriterAndBackfills(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Teams.Insert(ctx, team.Team{ID: "150", Name: "Duke Blue Devils"}))
	require.NoError(t, store.Teams.Insert(ctx, team.Team{ID: "150", Name: "Duke", Slug: "duke", Conference: "ACC"}))
	require.NoError(t, store.Teams.Insert(ctx, team.Team{ID: "150", Name: "Duke", Slug: "other", Conference: "Big East"}))

	got, ok, err := store.Teams.GetByID(ctx, "150")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, team.Team{ID: "150", Name: "Duke Blue Devils", Slug: "duke", Conference: "ACC"}, got)

	_, ok, err = store.Teams.GetByID(ctx, "999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlayerInsertReturnsOwnerOfIdentity(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Teams.Insert(ctx, team.Team{ID: "150", Name: "Duke Blue Devils"}))

	first, err := store.Players.Insert(ctx, player.Player{ID: "4433", Name: "Cooper Flagg", TeamID: "150"})
	require.NoError(t, err)
	assert.Equal(t, "4433", first.ID)
	assert.Equal(t, player.IdentityProvider, first.Kind)

	// same name and team under a weak id resolves to the stored provider row
	weak := player.WeakRef("Cooper Flagg")
	got, err := store.Players.Insert(ctx, player.Player{
		ID:     weak.StorageID("150"),
		Name:   weak.Name,
		TeamID: "150",
		Kind:   player.IdentityWeak,
	})
	require.NoError(t, err)
	assert.Equal(t, "4433", got.ID)

	found, err := store.Players.FindByName(ctx, "cooper flagg", "")
	require.NoError(t, err)
	require.Len(t, found, 1)

	partial, err := store.Players.FindByName(ctx, "flagg", "150")
	require.NoError(t, err)
	require.Len(t, partial, 1)
	assert.Equal(t, "Cooper Flagg", partial[0].Name)

	none, err := store.Players.FindByName(ctx, "flagg", "153")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGameUpsertNormalizesStatusAndCounts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Games.Upsert(ctx, game.Game{ID: "1", Date: "2025-11-04", Status: "STATUS_SCHEDULED", SeasonYear: 2026}))
	require.NoError(t, store.Games.Upsert(ctx, game.Game{ID: "2", Date: "2025-11-08", Status: "post", SeasonYear: 2026}))
	require.NoError(t, store.Games.Upsert(ctx, game.Game{ID: "3", Date: "2024-11-08", Status: "final", SeasonYear: 2025}))

	// a later sync moves game 1 to final
	require.NoError(t, store.Games.Upsert(ctx, game.Game{ID: "1", Date: "2025-11-04", Status: "Final", SeasonYear: 2026}))

	got, ok, err := store.Games.GetByID(ctx, "2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.StatusFinal, got.Status)

	all, err := store.Games.CountBySeason(ctx, 2026, false)
	require.NoError(t, err)
	assert.Equal(t, 2, all)

	completed, err := store.Games.CountBySeason(ctx, 2026, true)
	require.NoError(t, err)
	assert.Equal(t, 2, completed)
}

func TestSeasonAveragesSkipIncompleteGames(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	seedDukeGame(t, store, "final")
	require.NoError(t, store.Games.Upsert(ctx, game.Game{ID: "402", Date: "2025-11-08T00:00Z", Status: "final", SeasonYear: 2026}))
	require.NoError(t, store.Games.Upsert(ctx, game.Game{ID: "403", Date: "2025-11-12T00:00Z", Status: "in", SeasonYear: 2026}))

	require.NoError(t, store.Stats.Upsert(ctx, playerstats.Line{PlayerID: "4433", GameID: "401", Points: 18, Rebounds: 7, Assists: 3}))
	require.NoError(t, store.Stats.Upsert(ctx, playerstats.Line{PlayerID: "4433", GameID: "402", Points: 23, Rebounds: 6, Assists: 4}))
	require.NoError(t, store.Stats.Upsert(ctx, playerstats.Line{PlayerID: "4433", GameID: "403", Points: 40}))

	averages, err := store.Stats.SeasonAverages(ctx, playerstats.AveragesFilter{SeasonYear: 2026})
	require.NoError(t, err)
	require.Len(t, averages, 1)
	assert.Equal(t, 2, averages[0].GamesPlayed)
	assert.InDelta(t, 20.5, averages[0].PPG, 0.001)
	assert.InDelta(t, 6.5, averages[0].RPG, 0.001)
	assert.Equal(t, "Duke Blue Devils", averages[0].TeamName)

	log, err := store.Stats.ListGameLog(ctx, "4433", 2026, 1)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "402", log[0].GameID)

	other, err := store.Stats.SeasonAverages(ctx, playerstats.AveragesFilter{SeasonYear: 2025})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRawPayloadUpsertReplacesByKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	payload := rawdata.Payload{Source: "espn", EntityType: "summary", EntityKey: "401", PayloadJSON: `{"a":1}`}
	require.NoError(t, store.Raw.UpsertMany(ctx, []rawdata.Payload{payload}))
	payload.PayloadJSON = `{"a":2}`
	require.NoError(t, store.Raw.UpsertMany(ctx, []rawdata.Payload{payload}))

	var rows []struct {
		Payload string `db:"payload"`
		Hash    string `db:"payload_hash"`
	}
	require.NoError(t, store.DB().SelectContext(ctx, &rows, "SELECT payload, payload_hash FROM raw_payloads"))
	require.Len(t, rows, 1)
	assert.Equal(t, `{"a":2}`, rows[0].Payload)
	assert.Equal(t, payload.WithHash().PayloadHash, rows[0].Hash)
}

func TestOpenTwiceKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.sqlite")
	ctx := context.Background()

	first, err := Open(ctx, Options{URL: path, AutoMigrate: true})
	require.NoError(t, err)
	require.NoError(t, first.Teams.Insert(ctx, team.Team{ID: "150", Name: "Duke"}))
	require.NoError(t, first.Close())

	second, err := Open(ctx, Options{URL: "file:" + path, AutoMigrate: true})
	require.NoError(t, err)
	defer second.Close()

	_, ok, err := second.Teams.GetByID(ctx, "150")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, DialectSQLite, second.Dialect())
}

func TestMigrateLeavesCallerHandleOpen(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	dsn := store.dsn
	require.NoError(t, Migrate(ctx, dsn, store.DB().DB))
	require.NoError(t, Migrate(ctx, dsn, store.DB().DB))

	require.NoError(t, store.DB().PingContext(ctx))
	require.NoError(t, store.Teams.Insert(ctx, team.Team{ID: "2305", Name: "Kansas Jayhawks"}))
	_, ok, err := store.Teams.GetByID(ctx, "2305")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMigrateRejectsUnknownDialect(t *testing.T) {
	store := openTestStore(t)

	err := Migrate(context.Background(), DSN{Dialect: "mysql"}, store.DB().DB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
	require.NoError(t, store.DB().PingContext(context.Background()))
}

func TestParseDSN(t *testing.T) {
	cases := []struct {
		raw     string
		dialect Dialect
		source  string
		name    string
	}{
		{raw: "sqlite://cbb_tracker.sqlite", dialect: DialectSQLite, source: "cbb_tracker.sqlite", name: "cbb_tracker"},
		{raw: "sqlite:/tmp/x.db?cache=shared", dialect: DialectSQLite, source: "/tmp/x.db", name: "x"},
		{raw: "file:data/cbb.sqlite", dialect: DialectSQLite, source: "data/cbb.sqlite", name: "cbb"},
		{raw: "cbb.sqlite", dialect: DialectSQLite, source: "cbb.sqlite", name: "cbb"},
		{raw: "postgres://u:p@localhost:5432/cbb?sslmode=disable", dialect: DialectPostgres, source: "postgres://u:p@localhost:5432/cbb?sslmode=disable", name: "cbb"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseDSN(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.dialect, got.Dialect)
			assert.Equal(t, tc.source, got.DataSource)
			assert.Equal(t, tc.name, got.Name)
		})
	}

	for _, raw := range []string{"", "   ", "mysql://localhost/db", "sqlite://"} {
		if _, err := ParseDSN(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFormatQueryForTrace(t *testing.T) {
	got := formatQueryForTrace("SELECT *\n\tFROM   games\n WHERE game_id = ?")
	if got != "SELECT * FROM games WHERE game_id = ?" {
		t.Fatalf("unexpected formatted query: %q", got)
	}
}
