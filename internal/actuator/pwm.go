package actuator

import (
	"time"
)

// PwmActuator derives a leading-edge software PWM signal from the current time
// and the published duty cycle.
//
// The output does not depend on how often Drive is called, only on where "now"
// falls within the current period.
type PwmActuator struct {
	origin time.Time
	period time.Duration
	duty   *DutyCycle
}

func NewPwmActuator(origin time.Time, period time.Duration, duty *DutyCycle) *PwmActuator {
	return &PwmActuator{
		origin: origin,
		period: period,
		duty:   duty,
	}
}

// Drive returns true if the output should be ON at the given point in time
func (a *PwmActuator) Drive(now time.Time) bool {
	phase := a.Phase(now)
	onTime := float64(a.period) * a.duty.Load()
	return float64(phase) < onTime
}

// Phase returns the position of now within the current PWM period
func (a *PwmActuator) Phase(now time.Time) time.Duration {
	phase := now.Sub(a.origin) % a.period
	if phase < 0 {
		phase += a.period
	}
	return phase
}
