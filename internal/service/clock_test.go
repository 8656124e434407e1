package service

import "time"

// fakeClock pins "now" so window comparisons in tests are deterministic.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(t time.Time) { c.now = t }

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }
