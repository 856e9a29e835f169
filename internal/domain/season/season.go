package season

import (
	"fmt"
	"regexp"
	"strconv"

	crerr "github.com/cockroachdb/errors"
)

// ErrInvalidSeason is returned for season strings that are neither "YYYY-YY" nor "YYYY".
var ErrInvalidSeason = crerr.New("invalid season")

var (
	spanPattern = regexp.MustCompile(`^\s*(\d{4})\s*-\s*(\d{2})\s*$`)
	yearPattern = regexp.MustCompile(`^\s*(\d{4})\s*$`)
)

// ParseYear maps a human season string to the provider season year, which is
// the calendar year the season ends in: "2025-26" -> 2026, "2026" -> 2026.
func ParseYear(raw string) (int, error) {
	if m := spanPattern.FindStringSubmatch(raw); m != nil {
		start, _ := strconv.Atoi(m[1])
		suffix, _ := strconv.Atoi(m[2])
		if suffix != (start+1)%100 {
			return 0, fmt.Errorf("%w: %q does not span consecutive years", ErrInvalidSeason, raw)
		}
		return start + 1, nil
	}
	if m := yearPattern.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year, nil
	}
	return 0, fmt.Errorf("%w: %q, expected YYYY-YY or YYYY", ErrInvalidSeason, raw)
}

// Label renders a season year back to its "YYYY-YY" form.
func Label(year int) string {
	return fmt.Sprintf("%d-%02d", year-1, year%100)
}
