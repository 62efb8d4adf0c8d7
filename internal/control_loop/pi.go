package control_loop

import (
	"time"

	"github.com/markusressel/heat2go/internal/actuator"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
)

// PiControlLoop is a discrete PI controller in direct form:
//
//	u = -K1*e_prev + K2*e + u_prev
//
// K1 and K2 are precomputed from the continuous PI gains and the control period.
// The output is clamped to the configured power range, there is no anti-windup.
type PiControlLoop struct {
	k1       float64
	k2       float64
	period   time.Duration
	maxPower float64
	minDuty  float64
	maxDuty  float64

	lastTick  time.Time
	lastError float64
	lastPower float64

	duty *actuator.DutyCycle
}

var _ ControlLoop = (*PiControlLoop)(nil)

// NewPiControlLoop creates a PiControlLoop, which is first due one period after "now".
// The initial duty cycle is the configured minimum.
func NewPiControlLoop(config configuration.ControllerConfig, duty *actuator.DutyCycle, now time.Time) *PiControlLoop {
	duty.Store(config.MinDuty)
	return &PiControlLoop{
		k1:       config.K1,
		k2:       config.K2,
		period:   config.Period,
		maxPower: config.MaxPower,
		minDuty:  config.MinDuty,
		maxDuty:  config.MaxDuty,
		lastTick: now,
		duty:     duty,
	}
}

func (l *PiControlLoop) Tick(now time.Time, measured float64, setpoint float64) (duty float64, executed bool) {
	if now.Sub(l.lastTick) < l.period {
		return l.duty.Load(), false
	}

	err := setpoint - measured
	power := -l.k1*l.lastError + l.k2*err + l.lastPower
	power = util.Coerce(power, l.maxPower*l.minDuty, l.maxPower*l.maxDuty)

	duty = util.Coerce(power/l.maxPower, l.minDuty, l.maxDuty)

	ui.Debug("PiControlLoop: setpoint: %.2f, measured: %.2f, error: %.4f, power: %.2f, duty: %.4f", setpoint, measured, err, power, duty)

	l.lastPower = power
	l.lastError = err
	l.lastTick = now

	l.duty.Store(duty)
	return duty, true
}

// LastError returns the error of the last executed tick
func (l *PiControlLoop) LastError() float64 {
	return l.lastError
}

// LastPower returns the clamped power command of the last executed tick
func (l *PiControlLoop) LastPower() float64 {
	return l.lastPower
}

func (l *PiControlLoop) LastTick() time.Time {
	return l.lastTick
}

func (l *PiControlLoop) Duty() float64 {
	return l.duty.Load()
}
