package mock

import "time"

// Clock is frozen at the instant it was created, so every fixture written
// within one scenario shares a timestamp.
type Clock struct {
	now time.Time
}

// NewClock creates a new Clock frozen at the current second.
func NewClock() *Clock {
	return &Clock{now: time.Now().UTC().Truncate(time.Second)}
}

// Now returns the frozen instant.
func (c *Clock) Now() time.Time {
	return c.now
}
