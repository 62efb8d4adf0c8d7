package configuration

import "time"

type SensorConfig struct {
	ID string `json:"id"`
	// Time between two samples, also the pause between control loop iterations
	SamplingRate time.Duration `json:"samplingRate"`

	File   *FileSensorConfig   `json:"file,omitempty"`
	Cmd    *CmdSensorConfig    `json:"cmd,omitempty"`
	Serial *SerialSensorConfig `json:"serial,omitempty"`
}

// FileSensorConfig reads a raw ADC count from a file,
// f.ex. /sys/bus/iio/devices/iio:device0/in_voltage0_raw
type FileSensorConfig struct {
	Path string `json:"path"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

// SerialSensorConfig reads newline separated ADC counts from a microcontroller
type SerialSensorConfig struct {
	Port     string `json:"port"`
	BaudRate int    `json:"baudRate"`
}

type AdcConfig struct {
	ReferenceVoltage float64 `json:"referenceVoltage"`
	// Maximum raw count of the ADC (f.ex. 1023 for 10 bit), 0 if the sensor already reports volts
	Resolution    float64 `json:"resolution"`
	VoltageOffset float64 `json:"voltageOffset"`
}

type Pt100Config struct {
	// Ohm per °C
	Coefficient       float64 `json:"coefficient"`
	TemperatureOffset float64 `json:"temperatureOffset"`
}
