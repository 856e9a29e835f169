package httpjson

import (
	"math"
	"strconv"
	"strings"
)

// String returns the trimmed text form of src[key]. Numbers are rendered
// without a trailing ".0".
func String(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	return Text(src[key])
}

func Map(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	value, _ := src[key].(map[string]any)
	return value
}

func Slice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	value, _ := src[key].([]any)
	return value
}

// FirstMap returns the first object element of items.
func FirstMap(items []any) map[string]any {
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			return obj
		}
	}
	return nil
}

func Bool(src map[string]any, key string) bool {
	if src == nil {
		return false
	}
	switch typed := src[key].(type) {
	case bool:
		return typed
	case string:
		v, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && v
	default:
		return false
	}
}

// Text renders scalars as trimmed strings.
func Text(raw any) string {
	switch typed := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) < 1e15 {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// Int parses a scalar count. Fractional values truncate; anything
// unparseable is zero.
func Int(raw any) int {
	switch typed := raw.(type) {
	case float64:
		return floatToInt(typed)
	case int:
		return typed
	case int64:
		if typed > math.MaxInt || typed < math.MinInt {
			return 0
		}
		return int(typed)
	case string:
		text := strings.TrimSpace(typed)
		if text == "" {
			return 0
		}
		if v, err := strconv.Atoi(text); err == nil {
			return v
		}
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return floatToInt(v)
		}
		return 0
	default:
		return 0
	}
}

// floatToInt truncates v, mapping NaN, infinities and values outside the
// int range to zero.
func floatToInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Trunc(v)
	if v >= float64(math.MaxInt) || v < float64(math.MinInt) {
		return 0
	}
	return int(v)
}

// MadeAttempted splits a "made-attempted" string such as "7-12". Any other
// shape yields (0, 0).
func MadeAttempted(raw string) (int, int) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return 0, 0
	}
	made, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0
	}
	attempted, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0
	}
	return made, attempted
}

func FirstNonEmpty(values ...string) string {
	for _, item := range values {
		if v := strings.TrimSpace(item); v != "" {
			return v
		}
	}
	return ""
}
