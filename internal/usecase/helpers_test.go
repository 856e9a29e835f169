package usecase_test

import (
	"testing"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/infrastructure/repository/memory"
	usecasemock "github.com/riskibarqy/cbb-tracker/internal/mocks/usecase"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
)

type fixedRunID string

func (f fixedRunID) NewID() (string, error) { return string(f), nil }

var dukeTeam = usecase.ExternalTeam{
	ID:               "150",
	DisplayName:      "Duke Blue Devils",
	ShortDisplayName: "Duke",
	Abbreviation:     "DUKE",
	Location:         "Duke",
	Name:             "Blue Devils",
	Slug:             "duke-blue-devils",
	Conference:       "Atlantic Coast Conference",
}

func statLine(teamID, teamName string, ref player.Ref, pts, reb int) usecase.ExternalStatLine {
	return usecase.ExternalStatLine{
		TeamID:   teamID,
		TeamName: teamName,
		Player:   ref,
		Line:     playerstats.Line{PlayerID: ref.ID, Minutes: "30", Points: pts, Rebounds: reb},
	}
}

func completedEvent(id, date string) usecase.ExternalEvent {
	return usecase.ExternalEvent{
		ID:          id,
		Date:        date,
		HomeTeam:    "Duke Blue Devils",
		AwayTeam:    "Opponent",
		HomeTeamID:  "150",
		StatusLabel: "Final",
		Lifecycle:   game.LifecycleCompleted,
		SeasonYear:  2026,
	}
}

func scheduledEvent(id, date string) usecase.ExternalEvent {
	return usecase.ExternalEvent{
		ID:          id,
		Date:        date,
		HomeTeam:    "Duke Blue Devils",
		AwayTeam:    "Later Opponent",
		HomeTeamID:  "150",
		StatusLabel: "Scheduled",
		Lifecycle:   game.LifecycleScheduled,
		SeasonYear:  2026,
	}
}

type syncFixture struct {
	provider *usecasemock.StatsProvider
	store    *memory.Store
	resolver *usecase.ResolverService
	schedule *usecase.ScheduleService
	sync     *usecase.SyncService
}

func newSyncFixture(t *testing.T, cfg usecase.SyncConfig) syncFixture {
	t.Helper()

	provider := usecasemock.NewStatsProvider(t)
	provider.On("Name").Return("espn").Maybe()

	store := memory.NewStore()
	logger := logging.NewNop()
	resolver := usecase.NewResolverService(provider, store.Players, usecase.ResolverConfig{
		Aliases: usecase.DefaultESPNAliases(),
	}, logger)
	schedule := usecase.NewScheduleService(provider, logger)
	syncer := usecase.NewSyncService(provider, resolver, schedule, usecase.SyncRepositories{
		Teams:   store.Teams,
		Players: store.Players,
		Games:   store.Games,
		Stats:   store.Stats,
		Raw:     store.Raw,
	}, fixedRunID("run-1"), cfg, logger)

	return syncFixture{
		provider: provider,
		store:    store,
		resolver: resolver,
		schedule: schedule,
		sync:     syncer,
	}
}
