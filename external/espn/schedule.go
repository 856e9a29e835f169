package espn

import (
	"strings"

	"github.com/riskibarqy/cbb-tracker/external/httpjson"
	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
)

// parseSchedule maps events[] in provider order. Events without an id are
// dropped.
func parseSchedule(doc map[string]any) []usecase.ExternalEvent {
	events := httpjson.Slice(doc, "events")
	out := make([]usecase.ExternalEvent, 0, len(events))
	for _, raw := range events {
		ev, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		id := httpjson.String(ev, "id")
		if id == "" {
			continue
		}

		comp := httpjson.FirstMap(httpjson.Slice(ev, "competitions"))
		home, away := pickSides(httpjson.Slice(comp, "competitors"))

		statusType := httpjson.Map(httpjson.Map(comp, "status"), "type")
		if statusType == nil {
			statusType = httpjson.Map(httpjson.Map(ev, "status"), "type")
		}

		statusLabel := httpjson.FirstNonEmpty(
			httpjson.String(statusType, "description"),
			httpjson.String(statusType, "name"),
			httpjson.String(statusType, "state"),
		)

		out = append(out, usecase.ExternalEvent{
			ID:          id,
			Date:        httpjson.FirstNonEmpty(httpjson.String(ev, "date"), httpjson.String(comp, "date")),
			HomeTeam:    competitorName(home),
			AwayTeam:    competitorName(away),
			HomeTeamID:  httpjson.String(httpjson.Map(home, "team"), "id"),
			AwayTeamID:  httpjson.String(httpjson.Map(away, "team"), "id"),
			StatusLabel: statusLabel,
			Lifecycle:   classifyLifecycle(statusType),
			SeasonYear:  httpjson.Int(httpjson.Map(ev, "season")["year"]),
		})
	}
	return out
}

// pickSides prefers the homeAway marker and falls back to list order
// (home first).
func pickSides(competitors []any) (map[string]any, map[string]any) {
	var home, away map[string]any
	var ordered []map[string]any
	for _, raw := range competitors {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		ordered = append(ordered, obj)
		switch strings.ToLower(httpjson.String(obj, "homeAway")) {
		case "home":
			home = obj
		case "away":
			away = obj
		}
	}
	if home == nil && len(ordered) > 0 {
		home = ordered[0]
	}
	if away == nil && len(ordered) > 1 {
		away = ordered[1]
	}
	return home, away
}

func competitorName(competitor map[string]any) string {
	team := httpjson.Map(competitor, "team")
	return httpjson.FirstNonEmpty(
		httpjson.String(team, "displayName"),
		httpjson.String(team, "shortDisplayName"),
		httpjson.String(team, "name"),
		httpjson.String(team, "location"),
	)
}

// classifyLifecycle reads status.type. Postponed and canceled games are
// reported with state "post", so the name is checked first.
func classifyLifecycle(statusType map[string]any) game.Lifecycle {
	if statusType == nil {
		return game.LifecycleUnknown
	}
	name := strings.ToUpper(httpjson.String(statusType, "name"))
	state := strings.ToLower(httpjson.String(statusType, "state"))

	switch {
	case strings.Contains(name, "POSTPONED"):
		return game.LifecyclePostponed
	case strings.Contains(name, "CANCELED"), strings.Contains(name, "CANCELLED"):
		return game.LifecycleCanceled
	case httpjson.Bool(statusType, "completed"), state == "post", strings.Contains(name, "FINAL"):
		return game.LifecycleCompleted
	case state == "in":
		return game.LifecycleInProgress
	case state == "pre":
		return game.LifecycleScheduled
	default:
		return game.LifecycleUnknown
	}
}
