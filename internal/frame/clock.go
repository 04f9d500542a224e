package frame

import "time"

// Clock reports wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only changes when set or advanced.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a ManualClock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.now = t
}

// Add moves the clock forward by d.
func (c *ManualClock) Add(d time.Duration) {
	c.now = c.now.Add(d)
}
