package testutil

import (
	"context"
	"sync"
	"time"
)

// FixedTime is the instant reported by a FakeClock.
var FixedTime = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // shared test fixture

// FakeClock reports a fixed time and records sleeps instead of waiting.
// It satisfies clock.Clock.
type FakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

// NewFakeClock creates a clock stopped at FixedTime.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Now returns FixedTime.
func (c *FakeClock) Now() time.Time {
	return FixedTime
}

// Sleep records d and returns immediately with ctx's error, if any.
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()
	return ctx.Err()
}

// Sleeps returns the durations passed to Sleep, in order.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}
