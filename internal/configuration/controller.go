package configuration

import "time"

type ControllerConfig struct {
	// K1 and K2 are the coefficients of the discretized PI law
	// u(k) = -K1*e(k-1) + K2*e(k) + u(k-1)
	K1 float64 `json:"k1"`
	K2 float64 `json:"k2"`
	// Minimum time between two controller updates
	Period   time.Duration `json:"period"`
	MaxPower float64       `json:"maxPower"`
	MinDuty  float64       `json:"minDuty"`
	MaxDuty  float64       `json:"maxDuty"`
	// Target temperature in °C
	Setpoint float64 `json:"setpoint"`
}

type PwmConfig struct {
	Period time.Duration `json:"period"`
}
