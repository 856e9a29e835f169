package espn

import (
	"reflect"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cbb-tracker/internal/domain/player"
)

const byTeamSummary = `{
  "boxscore": {
    "teams": [
      {
        "team": {"id": "150", "displayName": "Duke Blue Devils"},
        "statistics": [
          {
            "names": ["MIN", "FG", "3PT", "FT", "REB", "AST", "STL", "BLK", "TO", "PTS"],
            "athletes": [
              {"athlete": {"id": "4433", "displayName": "Cooper Flagg"}, "stats": ["34", "7-12", "2-5", "2-2", "7", "4", "1", "2", "3", "18"]},
              {"athlete": {"id": "", "displayName": "Walk On"}, "stats": ["1", "DNP", "0-0", "x-y", "0", "0", "0", "0", "0", "0"]},
              {"athlete": {"id": "9", "displayName": ""}, "stats": ["10", "1-1", "0-0", "0-0", "1", "1", "0", "0", "0", "2"]},
              "not-a-row"
            ]
          }
        ]
      }
    ]
  }
}`

const byStatGroupSummary = `{
  "boxscore": {
    "players": [
      {
        "team": {"id": "2305", "displayName": "Kansas Jayhawks"},
        "statistics": [
          {
            "athletes": [
              {
                "athlete": {"id": "77", "displayName": "Hunter Dickinson"},
                "stats": [
                  {"name": "minutes", "value": "31"},
                  {"name": "points", "value": 21},
                  {"name": "rebounds", "value": 12},
                  {"name": "assists", "value": 2},
                  {"name": "fieldGoalsMade", "value": 9},
                  {"name": "fieldGoalsAttempted", "value": 15},
                  {"name": "freeThrowsMade", "value": 3},
                  {"name": "freeThrowsAttempted", "value": "4"},
                  {"name": "turnovers", "value": "bad"}
                ]
              }
            ]
          }
        ]
      }
    ]
  }
}`

func decodeDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := sonic.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return doc
}

func TestNormalizeBoxScore_ByTeamShapeWithAbbreviations(t *testing.T) {
	t.Parallel()

	box := NormalizeBoxScore("401", decodeDoc(t, byTeamSummary))
	if len(box.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(box.Lines))
	}
	if box.SkippedRows != 2 {
		t.Fatalf("expected nameless and non-object rows skipped, got %d", box.SkippedRows)
	}

	flagg := box.Lines[0]
	if flagg.TeamID != "150" || flagg.TeamName != "Duke Blue Devils" {
		t.Fatalf("unexpected team: %+v", flagg)
	}
	if flagg.Player != player.ProviderRef("4433", "Cooper Flagg") {
		t.Fatalf("unexpected player ref: %+v", flagg.Player)
	}
	line := flagg.Line
	if line.GameID != "401" || line.PlayerID != "4433" || line.Minutes != "34" {
		t.Fatalf("unexpected identity fields: %+v", line)
	}
	if line.Points != 18 || line.Rebounds != 7 || line.Assists != 4 || line.Steals != 1 || line.Blocks != 2 || line.Turnovers != 3 {
		t.Fatalf("unexpected counting stats: %+v", line)
	}
	if line.FGM != 7 || line.FGA != 12 || line.TPM != 2 || line.TPA != 5 || line.FTM != 2 || line.FTA != 2 {
		t.Fatalf("unexpected shooting splits: %+v", line)
	}

	walkOn := box.Lines[1]
	if !walkOn.Player.IsWeak() || walkOn.Line.PlayerID != "Walk On" {
		t.Fatalf("expected weak identity keyed by name, got %+v", walkOn.Player)
	}
	if walkOn.Line.FGM != 0 || walkOn.Line.FGA != 0 || walkOn.Line.FTM != 0 || walkOn.Line.FTA != 0 {
		t.Fatalf("expected malformed splits to degrade to zero, got %+v", walkOn.Line)
	}
}

func TestNormalizeBoxScore_ByStatGroupShapeWithVerboseNames(t *testing.T) {
	t.Parallel()

	box := NormalizeBoxScore("402", decodeDoc(t, byStatGroupSummary))
	if len(box.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(box.Lines))
	}
	got := box.Lines[0]
	if got.TeamID != "2305" || got.Player.ID != "77" {
		t.Fatalf("unexpected identity: %+v", got)
	}
	line := got.Line
	if line.Minutes != "31" || line.Points != 21 || line.Rebounds != 12 || line.Assists != 2 {
		t.Fatalf("unexpected stats: %+v", line)
	}
	if line.FGM != 9 || line.FGA != 15 || line.FTM != 3 || line.FTA != 4 || line.TPM != 0 || line.TPA != 0 {
		t.Fatalf("unexpected shooting splits: %+v", line)
	}
	if line.Turnovers != 0 || line.Steals != 0 {
		t.Fatalf("expected unparsable and absent stats to be zero: %+v", line)
	}
}

func TestNormalizeBoxScore_MixedShapesAreBothProcessed(t *testing.T) {
	t.Parallel()

	teams := decodeDoc(t, byTeamSummary)["boxscore"].(map[string]any)["teams"]
	players := decodeDoc(t, byStatGroupSummary)["boxscore"].(map[string]any)["players"]
	doc := map[string]any{"boxscore": map[string]any{"teams": teams, "players": players}}

	box := NormalizeBoxScore("403", doc)
	if len(box.Lines) != 3 {
		t.Fatalf("expected rows from both shapes, got %d", len(box.Lines))
	}
	if box.Lines[0].TeamID != "150" || box.Lines[2].TeamID != "2305" {
		t.Fatalf("unexpected row order: %+v", box.Lines)
	}
}

func TestNormalizeBoxScore_Deterministic(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, byTeamSummary)
	first := NormalizeBoxScore("401", doc)
	second := NormalizeBoxScore("401", doc)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output:\nfirst=%+v\nsecond=%+v", first, second)
	}
}

func TestNormalizeBoxScore_TolerantOfMissingStructure(t *testing.T) {
	t.Parallel()

	docs := []map[string]any{
		nil,
		{},
		{"boxscore": "oops"},
		{"boxscore": map[string]any{"teams": "oops", "players": []any{1, "x"}}},
		{"boxscore": map[string]any{"players": []any{map[string]any{"statistics": []any{"bad-group"}}}}},
	}
	for _, doc := range docs {
		box := NormalizeBoxScore("1", doc)
		if len(box.Lines) != 0 {
			t.Fatalf("expected no lines for %+v, got %+v", doc, box.Lines)
		}
	}
}

func TestNormalizeBoxScore_RowTeamOverridesEntryTeam(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"boxscore": map[string]any{
			"players": []any{
				map[string]any{
					"statistics": []any{
						map[string]any{
							"labels": []any{"PTS"},
							"athletes": []any{
								map[string]any{
									"team":    map[string]any{"id": "52", "displayName": "Florida State"},
									"athlete": map[string]any{"id": "5", "displayName": "Row Team"},
									"stats":   []any{"11"},
								},
							},
						},
					},
				},
			},
		},
	}

	box := NormalizeBoxScore("9", doc)
	if len(box.Lines) != 1 || box.Lines[0].TeamID != "52" || box.Lines[0].Line.Points != 11 {
		t.Fatalf("unexpected lines: %+v", box.Lines)
	}
}

func TestLines_IsRestartable(t *testing.T) {
	t.Parallel()

	seq := Lines("401", decodeDoc(t, byTeamSummary))
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if first, second := count(), count(); first != 2 || second != 2 {
		t.Fatalf("expected 2 lines on each pass, got %d and %d", first, second)
	}

	for line := range seq {
		if line.Player.Name != "Cooper Flagg" {
			t.Fatalf("unexpected first line: %+v", line)
		}
		break
	}
}

func TestNormalizeBoxScore_DuplicatePlayerKeepsLaterValues(t *testing.T) {
	t.Parallel()

	row := func(points string) map[string]any {
		return map[string]any{
			"athlete": map[string]any{"id": "4433", "displayName": "Cooper Flagg"},
			"stats":   []any{points},
		}
	}
	group := func(points string) []any {
		return []any{map[string]any{"names": []any{"PTS"}, "athletes": []any{row(points)}}}
	}
	team := map[string]any{"id": "150", "displayName": "Duke Blue Devils"}
	doc := map[string]any{
		"boxscore": map[string]any{
			"teams":   []any{map[string]any{"team": team, "statistics": group("12")}},
			"players": []any{map[string]any{"team": team, "statistics": group("18")}},
		},
	}

	box := NormalizeBoxScore("401", doc)
	if len(box.Lines) != 1 {
		t.Fatalf("expected one line per player, got %d", len(box.Lines))
	}
	if box.Lines[0].Line.Points != 18 {
		t.Fatalf("expected later row to win, got %d", box.Lines[0].Line.Points)
	}

	n := 0
	for range Lines("401", doc) {
		n++
	}
	if n != 2 {
		t.Fatalf("expected raw sequence to keep both rows, got %d", n)
	}
}
