package watchlist

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Entry is one tracked player.
type Entry struct {
	Name string `yaml:"name" validate:"required,max=120"`
	Team string `yaml:"team" validate:"required,max=120"`
}

func (e Entry) Validate() error {
	if err := structValidator().Struct(e); err != nil {
		return fmt.Errorf("invalid watchlist entry %q: %w", e.Name, err)
	}
	return nil
}

// Matches compares name and, when team is non-empty, team case-insensitively.
func (e Entry) Matches(name, team string) bool {
	if !strings.EqualFold(strings.TrimSpace(e.Name), strings.TrimSpace(name)) {
		return false
	}
	team = strings.TrimSpace(team)
	return team == "" || strings.EqualFold(strings.TrimSpace(e.Team), team)
}

// List is the tracked-player file: a season, a division and players.
type List struct {
	Season   string  `yaml:"season,omitempty"`
	Division string  `yaml:"division,omitempty"`
	Players  []Entry `yaml:"players"`
}

func (l List) Validate() error {
	for _, item := range l.Players {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ByTeam groups tracked names by team label, preserving first-seen order.
func (l List) ByTeam() ([]string, map[string][]string) {
	order := make([]string, 0)
	grouped := make(map[string][]string)
	for _, item := range l.Players {
		team := strings.TrimSpace(item.Team)
		if _, ok := grouped[team]; !ok {
			order = append(order, team)
		}
		grouped[team] = append(grouped[team], strings.TrimSpace(item.Name))
	}
	return order, grouped
}

// Add appends an entry.
func (l *List) Add(entry Entry) error {
	entry.Name = strings.TrimSpace(entry.Name)
	entry.Team = strings.TrimSpace(entry.Team)
	if err := entry.Validate(); err != nil {
		return err
	}
	l.Players = append(l.Players, entry)
	return nil
}

// Remove drops every entry matching name (and team when non-empty) and
// reports how many were removed.
func (l *List) Remove(name, team string) int {
	kept := l.Players[:0]
	removed := 0
	for _, item := range l.Players {
		if item.Matches(name, team) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	l.Players = kept
	return removed
}
