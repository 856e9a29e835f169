package game

import "strings"

// Canonical status tokens written to the store.
const (
	StatusFinal      = "final"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusPostponed  = "postponed"
	StatusCanceled   = "canceled"
)

// Lifecycle is the provider-independent progress of a game.
type Lifecycle string

const (
	LifecycleScheduled  Lifecycle = "scheduled"
	LifecycleInProgress Lifecycle = "in_progress"
	LifecycleCompleted  Lifecycle = "completed"
	LifecyclePostponed  Lifecycle = "postponed"
	LifecycleCanceled   Lifecycle = "canceled"
	LifecycleUnknown    Lifecycle = "unknown"
)

// Status maps a lifecycle to its canonical stored status.
func (l Lifecycle) Status() string {
	switch l {
	case LifecycleCompleted:
		return StatusFinal
	case LifecycleInProgress:
		return StatusInProgress
	case LifecyclePostponed:
		return StatusPostponed
	case LifecycleCanceled:
		return StatusCanceled
	case LifecycleScheduled:
		return StatusScheduled
	default:
		return ""
	}
}

// Game is one scheduled or played event.
type Game struct {
	ID         string
	Date       string
	HomeTeam   string
	AwayTeam   string
	Status     string
	SeasonYear int
}

// NormalizeStatus folds provider status labels into the canonical tokens.
// Unrecognized labels are kept lower-cased.
func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	switch {
	case status == "":
		return StatusScheduled
	case status == "post", status == "final", status == "status_final", status == "completed",
		strings.HasPrefix(status, "final/"), strings.HasPrefix(status, "final "):
		return StatusFinal
	case status == "pre", status == "status_scheduled", status == StatusScheduled:
		return StatusScheduled
	case status == "in", status == "live", status == "status_in_progress", status == "in progress",
		status == StatusInProgress, status == "halftime", status == "status_halftime":
		return StatusInProgress
	case status == "status_postponed", status == StatusPostponed:
		return StatusPostponed
	case status == "status_canceled", status == "status_cancelled", status == StatusCanceled, status == "cancelled":
		return StatusCanceled
	default:
		return status
	}
}

// CompletedStatuses lists stored values that count as completed, including
// raw labels written before normalization existed.
func CompletedStatuses() []string {
	return []string{StatusFinal, "post", "status_final"}
}

func IsCompletedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinal
}
