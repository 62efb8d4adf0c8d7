package sensors

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/configuration"
)

// Sensor is a source of raw ADC readings of the PT100 voltage divider.
type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// ReadRaw returns the current raw reading of this sensor,
	// either an ADC count or a voltage, depending on the adc configuration
	ReadRaw() (float64, error)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	if config.Serial != nil {
		return NewSerialSensor(config), nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
