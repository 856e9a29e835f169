package memory

import (
	"sync"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/domain/rawdata"
	"github.com/riskibarqy/cbb-tracker/internal/domain/team"
)

type statKey struct {
	playerID string
	gameID   string
}

type rawKey struct {
	source     string
	entityType string
	entityKey  string
}

// Store keeps every table in process memory with the same write semantics
// as the SQL store. Foreign keys are not enforced.
type Store struct {
	mu sync.RWMutex

	teams      map[string]team.Team
	players    map[string]player.Player
	games      map[string]game.Game
	stats      map[statKey]playerstats.Line
	statsOrder []statKey
	raw        map[rawKey]rawdata.Payload

	Teams   *TeamRepository
	Players *PlayerRepository
	Games   *GameRepository
	Stats   *PlayerStatsRepository
	Raw     *RawDataRepository
}

func NewStore() *Store {
	s := &Store{
		teams:   make(map[string]team.Team),
		players: make(map[string]player.Player),
		games:   make(map[string]game.Game),
		stats:   make(map[statKey]playerstats.Line),
		raw:     make(map[rawKey]rawdata.Payload),
	}
	s.Teams = &TeamRepository{store: s}
	s.Players = &PlayerRepository{store: s}
	s.Games = &GameRepository{store: s}
	s.Stats = &PlayerStatsRepository{store: s}
	s.Raw = &RawDataRepository{store: s}
	return s
}

// RawPayloads returns archived payloads, for tests.
func (s *Store) RawPayloads() []rawdata.Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]rawdata.Payload, 0, len(s.raw))
	for _, item := range s.raw {
		out = append(out, item)
	}
	return out
}
