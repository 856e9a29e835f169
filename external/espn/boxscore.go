package espn

import (
	"iter"
	"strings"

	"github.com/riskibarqy/cbb-tracker/external/httpjson"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
	"github.com/riskibarqy/cbb-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
)

// rowSource is one known place athlete rows live inside boxscore.
type rowSource string

const (
	// boxscore.teams[] -> statistics[] -> athletes[]
	sourceByTeam rowSource = "teams"
	// boxscore.players[] -> statistics[] -> athletes[]
	sourceByStatGroup rowSource = "players"
)

// Every document is walked through all sources; payloads mix them.
var rowSources = []rowSource{sourceByTeam, sourceByStatGroup}

// BoxScore is the normalized output of one summary document.
type BoxScore struct {
	Lines       []usecase.ExternalStatLine
	SkippedRows int
}

// NormalizeBoxScore converts a summary document into canonical stat lines.
// Defective groups and rows are counted and skipped; it never fails. A
// player seen twice for the same team keeps the first position with the
// values of the later row.
func NormalizeBoxScore(eventID string, doc map[string]any) BoxScore {
	var out BoxScore
	positions := make(map[string]int)
	walkRows(eventID, doc, func(line usecase.ExternalStatLine, ok bool) bool {
		if !ok {
			out.SkippedRows++
			return true
		}
		key := line.TeamID + "|" + line.Player.ID
		if idx, seen := positions[key]; seen {
			out.Lines[idx] = line
			return true
		}
		positions[key] = len(out.Lines)
		out.Lines = append(out.Lines, line)
		return true
	})
	return out
}

// Lines yields the stat lines of doc lazily without collapsing duplicates.
// The sequence can be ranged over more than once.
func Lines(eventID string, doc map[string]any) iter.Seq[usecase.ExternalStatLine] {
	return func(yield func(usecase.ExternalStatLine) bool) {
		walkRows(eventID, doc, func(line usecase.ExternalStatLine, ok bool) bool {
			if !ok {
				return true
			}
			return yield(line)
		})
	}
}

func walkRows(eventID string, doc map[string]any, emit func(usecase.ExternalStatLine, bool) bool) {
	box := httpjson.Map(doc, "boxscore")
	if box == nil {
		box = doc
	}

	for _, source := range rowSources {
		for _, rawEntry := range httpjson.Slice(box, string(source)) {
			entry, ok := rawEntry.(map[string]any)
			if !ok {
				if !emit(usecase.ExternalStatLine{}, false) {
					return
				}
				continue
			}
			entryTeam := httpjson.Map(entry, "team")

			for _, rawGroup := range httpjson.Slice(entry, "statistics") {
				group, ok := rawGroup.(map[string]any)
				if !ok {
					if !emit(usecase.ExternalStatLine{}, false) {
						return
					}
					continue
				}
				labels := groupLabels(group)
				groupTeam := firstTeam(httpjson.Map(group, "team"), entryTeam)

				for _, rawRow := range httpjson.Slice(group, "athletes") {
					row, ok := rawRow.(map[string]any)
					if !ok {
						if !emit(usecase.ExternalStatLine{}, false) {
							return
						}
						continue
					}
					line, ok := extractLine(eventID, firstTeam(httpjson.Map(row, "team"), groupTeam), labels, row)
					if !emit(line, ok) {
						return
					}
				}
			}
		}
	}
}

// extractLine is shared by every row source.
func extractLine(eventID string, team map[string]any, labels []string, row map[string]any) (usecase.ExternalStatLine, bool) {
	athlete := httpjson.Map(row, "athlete")
	name := httpjson.FirstNonEmpty(httpjson.String(athlete, "displayName"), httpjson.String(athlete, "fullName"))
	if name == "" {
		return usecase.ExternalStatLine{}, false
	}

	ref := player.ProviderRef(httpjson.String(athlete, "id"), name)
	line := buildLine(statValues(labels, row["stats"]))
	line.PlayerID = ref.ID
	line.GameID = eventID

	return usecase.ExternalStatLine{
		TeamID:   httpjson.String(team, "id"),
		TeamName: httpjson.FirstNonEmpty(httpjson.String(team, "displayName"), httpjson.String(team, "shortDisplayName"), httpjson.String(team, "name")),
		Player:   ref,
		Line:     line,
	}, true
}

// groupLabels returns the positional labels of a stat group. Abbreviations
// are preferred over keys.
func groupLabels(group map[string]any) []string {
	for _, key := range []string{"names", "labels", "keys"} {
		raw := httpjson.Slice(group, key)
		if len(raw) == 0 {
			continue
		}
		labels := make([]string, 0, len(raw))
		for _, item := range raw {
			labels = append(labels, httpjson.Text(item))
		}
		return labels
	}
	return nil
}

func firstTeam(candidates ...map[string]any) map[string]any {
	for _, candidate := range candidates {
		if httpjson.String(candidate, "id") != "" || httpjson.String(candidate, "displayName") != "" {
			return candidate
		}
	}
	return nil
}

// statValues flattens a row's stats into label -> text. Stats arrive either
// as {name,value} objects, as positional values matched against labels or as
// a plain object.
func statValues(labels []string, raw any) map[string]string {
	out := make(map[string]string, len(labels))
	switch stats := raw.(type) {
	case []any:
		for i, item := range stats {
			if obj, ok := item.(map[string]any); ok {
				key := httpjson.FirstNonEmpty(httpjson.String(obj, "name"), httpjson.String(obj, "label"), httpjson.String(obj, "abbreviation"))
				if key == "" {
					continue
				}
				value := httpjson.Text(obj["value"])
				if value == "" {
					value = httpjson.String(obj, "displayValue")
				}
				out[key] = value
				continue
			}
			if i < len(labels) && labels[i] != "" {
				out[labels[i]] = httpjson.Text(item)
			}
		}
	case map[string]any:
		for key, value := range stats {
			out[key] = httpjson.Text(value)
		}
	}
	return out
}

func buildLine(values map[string]string) playerstats.Line {
	line := playerstats.Line{
		Minutes:   lookup(values, "minutes", "MIN"),
		Points:    intStat(values, "points", "PTS"),
		Rebounds:  intStat(values, "rebounds", "totalRebounds", "REB"),
		Assists:   intStat(values, "assists", "AST"),
		Steals:    intStat(values, "steals", "STL"),
		Blocks:    intStat(values, "blocks", "BLK"),
		Turnovers: intStat(values, "turnovers", "TO", "TOV"),
	}
	line.FGM, line.FGA = shootingPair(values, "fieldGoalsMade", "fieldGoalsAttempted", "FG")
	line.TPM, line.TPA = shootingPair(values, "threePointFieldGoalsMade", "threePointFieldGoalsAttempted", "3PT")
	line.FTM, line.FTA = shootingPair(values, "freeThrowsMade", "freeThrowsAttempted", "FT")
	return line
}

// shootingPair reads verbose made/attempted counts, then the combined
// "made-attempted" text under its verbose or abbreviated label.
func shootingPair(values map[string]string, madeKey, attemptedKey, abbreviation string) (int, int) {
	if lookup(values, madeKey, attemptedKey) != "" {
		return intStat(values, madeKey), intStat(values, attemptedKey)
	}
	combined := lookup(values, madeKey+"-"+attemptedKey, abbreviation)
	return httpjson.MadeAttempted(combined)
}

func lookup(values map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(values[key]); value != "" {
			return value
		}
	}
	return ""
}

func intStat(values map[string]string, keys ...string) int {
	return httpjson.Int(lookup(values, keys...))
}
