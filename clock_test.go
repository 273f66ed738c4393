package evergreen

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManualClockSteps(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewManualClock(start, 20*time.Millisecond)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		now, err := c.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		want := start.Add(time.Duration(i) * 20 * time.Millisecond)
		if !now.Equal(want) {
			t.Errorf("frame %d at %v, want %v", i, now, want)
		}
	}
}

func TestManualClockCancelled(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0), time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next err = %v, want context.Canceled", err)
	}
}

func TestRunLoopStopsOnCancel(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0), time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	var seen []time.Time
	err := RunLoop(ctx, c, func(now time.Time) {
		seen = append(seen, now)
		if len(seen) == 5 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(seen) != 5 {
		t.Fatalf("frames = %d, want 5", len(seen))
	}
	for i := 1; i < len(seen); i++ {
		if !seen[i].After(seen[i-1]) {
			t.Errorf("frame %d time %v not after %v", i, seen[i], seen[i-1])
		}
	}
}

func TestTickerClockTicks(t *testing.T) {
	c := NewTickerClock(200)
	defer c.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	a, err := c.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	b, err := c.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !b.After(a) {
		t.Errorf("second tick %v not after first %v", b, a)
	}
}

func TestTickerClockHonorsDeadline(t *testing.T) {
	c := NewTickerClock(1)
	defer c.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := c.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}
