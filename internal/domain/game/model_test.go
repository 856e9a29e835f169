package game

import "testing"

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"post":               StatusFinal,
		"Final":              StatusFinal,
		"STATUS_FINAL":       StatusFinal,
		"Final/OT":           StatusFinal,
		"":                   StatusScheduled,
		"pre":                StatusScheduled,
		"in":                 StatusInProgress,
		"STATUS_IN_PROGRESS": StatusInProgress,
		"STATUS_POSTPONED":   StatusPostponed,
		"Canceled":           StatusCanceled,
		"Delayed":            "delayed",
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Fatalf("normalize %q: got=%q want=%q", raw, got, want)
		}
	}
}

func TestLifecycleStatus(t *testing.T) {
	t.Parallel()

	if LifecycleCompleted.Status() != StatusFinal {
		t.Fatalf("completed lifecycle must map to final")
	}
	if LifecycleUnknown.Status() != "" {
		t.Fatalf("unknown lifecycle must not claim a canonical status")
	}
	if !IsCompletedStatus("status_final") {
		t.Fatalf("expected status_final to count as completed")
	}
}
