package testingutils

import (
	"time"

	"github.com/markusressel/heat2go/internal/util"
)

// ManualClock is a util.Clock that only moves when told to.
type ManualClock struct {
	current time.Time
}

var _ util.Clock = (*ManualClock)(nil)

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

func (c *ManualClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by the given duration
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.current = c.current.Add(d)
	return c.current
}

// Set moves the clock to the given point in time
func (c *ManualClock) Set(t time.Time) {
	c.current = t
}
