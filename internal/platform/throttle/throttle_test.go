package throttle

import (
	"context"
	"testing"
	"time"
)

func TestThrottle_SpacesConsecutiveCalls(t *testing.T) {
	th := New(40 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.Wait(ctx); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}
	elapsed := time.Since(start)
	if elapsed < 70*time.Millisecond {
		t.Fatalf("expected at least two delays between three calls, got %s", elapsed)
	}
}

func TestThrottle_ZeroDelayNeverBlocks(t *testing.T) {
	th := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := th.Wait(ctx); err != nil {
		t.Fatalf("disabled throttle must not fail: %v", err)
	}
	if th.Delay() != 0 {
		t.Fatalf("unexpected delay: %s", th.Delay())
	}
}

func TestThrottle_NilIsDisabled(t *testing.T) {
	var th *Throttle
	if err := th.Wait(context.Background()); err != nil {
		t.Fatalf("nil throttle must not fail: %v", err)
	}
}
