package util

import "time"

// Clock is the time source of the control loop. Components never call
// time.Now() directly, so gating and PWM phases can be tested without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// SystemClock returns wall clock readings, which carry Go's monotonic clock reading,
// so durations computed with time.Time.Sub are not affected by clock adjustments.
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}
