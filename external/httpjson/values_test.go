package httpjson

import (
	"math"
	"testing"
)

func TestMadeAttempted(t *testing.T) {
	t.Parallel()

	cases := map[string][2]int{
		"7-12":   {7, 12},
		" 0-3 ":  {0, 3},
		"DNP":    {0, 0},
		"":       {0, 0},
		"7-":     {0, 0},
		"1-2-3":  {0, 0},
		"a-b":    {0, 0},
		"10 - 4": {10, 4},
	}
	for raw, want := range cases {
		made, attempted := MadeAttempted(raw)
		if made != want[0] || attempted != want[1] {
			t.Fatalf("MadeAttempted(%q) = (%d, %d), want (%d, %d)", raw, made, attempted, want[0], want[1])
		}
	}
}

func TestTextAndInt(t *testing.T) {
	t.Parallel()

	if got := Text(float64(150)); got != "150" {
		t.Fatalf("expected integral float rendered without fraction, got %q", got)
	}
	if got := Text(12.5); got != "12.5" {
		t.Fatalf("unexpected float text: %q", got)
	}
	if got := Int("18"); got != 18 {
		t.Fatalf("unexpected int: %d", got)
	}
	if got := Int("3.0"); got != 3 {
		t.Fatalf("unexpected int from decimal string: %d", got)
	}
	if got := Int("--"); got != 0 {
		t.Fatalf("expected zero for placeholder, got %d", got)
	}
	if got := Int(nil); got != 0 {
		t.Fatalf("expected zero for nil, got %d", got)
	}
}

func TestIntRejectsNonFiniteAndOutOfRange(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"nan string":       "NaN",
		"inf string":       "Inf",
		"negative inf":     "-Infinity",
		"huge exponent":    "1e30",
		"huge negative":    "-1e30",
		"huge float":       1e300,
		"non-finite float": math.Inf(1),
		"nan float":        math.NaN(),
	}
	for name, raw := range cases {
		if got := Int(raw); got != 0 {
			t.Fatalf("%s: Int(%v) = %d, want 0", name, raw, got)
		}
	}

	if got := Int(-7.9); got != -7 {
		t.Fatalf("expected truncation toward zero, got %d", got)
	}
	if got := Int("2.5e1"); got != 25 {
		t.Fatalf("expected exponent form to parse, got %d", got)
	}
}
