package domain

import "time"

// Clock supplies timestamps to the services. The host clock must be
// non-decreasing but need not be wall-clock accurate; values are stored at
// millisecond granularity.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the OS clock, truncated to milliseconds.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FixedClock returns a preset time, advancing by Step on each call.
// Test helper; a zero Step freezes time entirely.
type FixedClock struct {
	T    time.Time
	Step time.Duration
}

func (c *FixedClock) Now() time.Time {
	t := c.T
	c.T = c.T.Add(c.Step)
	return t
}
