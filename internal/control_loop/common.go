package control_loop

import "time"

type ControlLoop interface {
	// Tick advances the control loop, if it is due.
	// Returns the current duty cycle and whether the loop has been executed.
	Tick(now time.Time, measured float64, setpoint float64) (duty float64, executed bool)
}
