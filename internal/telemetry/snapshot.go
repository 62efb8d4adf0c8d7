package telemetry

import (
	"time"
)

// Snapshot is the observable state of a control loop after one iteration
type Snapshot struct {
	Id   string    `json:"id"`
	Time time.Time `json:"time"`
	// time since the control loop has been started
	Elapsed time.Duration `json:"elapsed"`

	LastVoltage float64 `json:"lastVoltage"`
	// smoothed temperature estimate, only valid if HasTemperature is true
	Temperature    float64 `json:"temperature"`
	HasTemperature bool    `json:"hasTemperature"`
	Setpoint       float64 `json:"setpoint"`
	// trimmed mean of the last full buffer, before smoothing
	TrimmedMean float64 `json:"trimmedMean"`
	// number of samples in the filter buffer, equals its size once filled
	BufferFill int `json:"bufferFill"`

	// time of the last executed controller update
	LastControlUpdate time.Time `json:"lastControlUpdate"`

	LastError float64 `json:"lastError"`
	LastPower float64 `json:"lastPower"`
	Duty      float64 `json:"duty"`
	RelayOn   bool    `json:"relayOn"`

	SensorFault    bool `json:"sensorFault"`
	FaultCount     int  `json:"faultCount"`
	ReadErrorCount int  `json:"readErrorCount"`
}
