package evergreen

import (
	"context"
	"time"
)

// FrameClock paces a frame loop. Next blocks until the next frame is due and
// returns its timestamp, or returns ctx.Err() once ctx is done.
type FrameClock interface {
	Next(ctx context.Context) (time.Time, error)
}

// RunLoop calls frame once per clock tick until ctx is cancelled. It returns
// the error that ended the loop, normally ctx.Err().
func RunLoop(ctx context.Context, clock FrameClock, frame func(now time.Time)) error {
	for {
		now, err := clock.Next(ctx)
		if err != nil {
			return err
		}
		frame(now)
	}
}

// TickerClock is a wall-clock FrameClock backed by time.Ticker.
type TickerClock struct {
	ticker *time.Ticker
}

// NewTickerClock returns a clock ticking fps times per second.
func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 60
	}
	return &TickerClock{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

// Next waits for the next tick.
func (c *TickerClock) Next(ctx context.Context) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	case now := <-c.ticker.C:
		return now, nil
	}
}

// Stop releases the ticker.
func (c *TickerClock) Stop() {
	c.ticker.Stop()
}

// ManualClock is a deterministic FrameClock: every Next advances a virtual
// time by a fixed step without sleeping.
type ManualClock struct {
	now  time.Time
	step time.Duration
}

// NewManualClock starts at start and advances by step per frame.
func NewManualClock(start time.Time, step time.Duration) *ManualClock {
	return &ManualClock{now: start, step: step}
}

// Next returns the next virtual frame time.
func (c *ManualClock) Next(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	c.now = c.now.Add(c.step)
	return c.now, nil
}
