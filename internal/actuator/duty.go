package actuator

import (
	"math"
	"sync/atomic"
)

// DutyCycle is the fraction of a PWM period the output is switched on.
// It is written by a single controller and may be read concurrently.
type DutyCycle struct {
	bits atomic.Uint64
}

func NewDutyCycle(initial float64) *DutyCycle {
	d := &DutyCycle{}
	d.Store(initial)
	return d
}

func (d *DutyCycle) Load() float64 {
	return math.Float64frombits(d.bits.Load())
}

func (d *DutyCycle) Store(value float64) {
	d.bits.Store(math.Float64bits(value))
}
