package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	store *Store
}

func (r *PlayerStatsRepository) Upsert(_ context.Context, line playerstats.Line) error {
	line.PlayerID = strings.TrimSpace(line.PlayerID)
	line.GameID = strings.TrimSpace(line.GameID)
	if line.PlayerID == "" || line.GameID == "" {
		return fmt.Errorf("player id and game id are required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := statKey{playerID: line.PlayerID, gameID: line.GameID}
	if _, ok := r.store.stats[key]; !ok {
		r.store.statsOrder = append(r.store.statsOrder, key)
	}
	r.store.stats[key] = line
	return nil
}

func (r *PlayerStatsRepository) SeasonAverages(_ context.Context, filter playerstats.AveragesFilter) ([]playerstats.SeasonAverage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	type totals struct {
		avg playerstats.SeasonAverage
		sum playerstats.Line
	}
	byPlayer := make(map[string]*totals)
	order := make([]string, 0)
	for _, key := range r.store.statsOrder {
		line := r.store.stats[key]
		g, ok := r.store.games[key.gameID]
		if !ok || g.SeasonYear != filter.SeasonYear || !game.IsCompletedStatus(g.Status) {
			continue
		}
		p, ok := r.store.players[key.playerID]
		if !ok {
			continue
		}
		if filter.TeamID != "" && p.TeamID != filter.TeamID {
			continue
		}
		if filter.PlayerID != "" && p.ID != filter.PlayerID {
			continue
		}

		agg, ok := byPlayer[p.ID]
		if !ok {
			agg = &totals{avg: playerstats.SeasonAverage{
				PlayerID:   p.ID,
				PlayerName: p.Name,
				TeamID:     p.TeamID,
				TeamName:   r.store.teams[p.TeamID].Name,
			}}
			byPlayer[p.ID] = agg
			order = append(order, p.ID)
		}
		agg.avg.GamesPlayed++
		agg.sum.Points += line.Points
		agg.sum.Rebounds += line.Rebounds
		agg.sum.Assists += line.Assists
		agg.sum.Steals += line.Steals
		agg.sum.Blocks += line.Blocks
		agg.sum.Turnovers += line.Turnovers
	}

	out := make([]playerstats.SeasonAverage, 0, len(order))
	for _, id := range order {
		agg := byPlayer[id]
		gp := agg.avg.GamesPlayed
		agg.avg.PPG = average(agg.sum.Points, gp)
		agg.avg.RPG = average(agg.sum.Rebounds, gp)
		agg.avg.APG = average(agg.sum.Assists, gp)
		agg.avg.SPG = average(agg.sum.Steals, gp)
		agg.avg.BPG = average(agg.sum.Blocks, gp)
		agg.avg.TOV = average(agg.sum.Turnovers, gp)
		out = append(out, agg.avg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PPG != out[j].PPG {
			return out[i].PPG > out[j].PPG
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return out, nil
}

func (r *PlayerStatsRepository) ListGameLog(_ context.Context, playerID string, seasonYear, limit int) ([]playerstats.GameLogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]playerstats.GameLogEntry, 0)
	for _, key := range r.store.statsOrder {
		if key.playerID != playerID {
			continue
		}
		g, ok := r.store.games[key.gameID]
		if !ok || !game.IsCompletedStatus(g.Status) {
			continue
		}
		if seasonYear > 0 && g.SeasonYear != seasonYear {
			continue
		}
		out = append(out, playerstats.GameLogEntry{
			GameID:   g.ID,
			Date:     g.Date,
			HomeTeam: g.HomeTeam,
			AwayTeam: g.AwayTeam,
			Line:     r.store.stats[key],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].GameID > out[j].GameID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PlayerStatsRepository) CountByGame(_ context.Context, gameID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for key := range r.store.stats {
		if key.gameID == gameID {
			count++
		}
	}
	return count, nil
}

func average(total, games int) float64 {
	if games == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(games)*10) / 10
}
