package sqlstore

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/riskibarqy/cbb-tracker/internal/domain/game"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func completedStatusArgs() []any {
	statuses := game.CompletedStatuses()
	out := make([]any, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, strings.ToLower(status))
	}
	return out
}
