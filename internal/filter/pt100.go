package filter

import (
	"errors"
	"fmt"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

// ErrSensorFault is returned for readings that cannot be converted into a temperature,
// f.ex. a divider voltage at or above the reference voltage (open sensor).
var ErrSensorFault = errors.New("sensor fault")

const (
	// resistance of a PT100 at 0°C, also the value of the divider resistor
	pt100NominalResistance = 100.0
)

// Pt100Converter converts raw ADC readings of a PT100 in a voltage divider
// into a temperature.
type Pt100Converter struct {
	ReferenceVoltage float64
	// maximum raw ADC count, 0 if raw readings are already volts
	Resolution        float64
	VoltageOffset     float64
	Coefficient       float64
	TemperatureOffset float64
}

func NewPt100Converter(adc configuration.AdcConfig, pt100 configuration.Pt100Config) Pt100Converter {
	return Pt100Converter{
		ReferenceVoltage:  adc.ReferenceVoltage,
		Resolution:        adc.Resolution,
		VoltageOffset:     adc.VoltageOffset,
		Coefficient:       pt100.Coefficient,
		TemperatureOffset: pt100.TemperatureOffset,
	}
}

// Voltage maps a raw ADC reading linearly to volts and applies the calibration offset
func (c Pt100Converter) Voltage(raw float64) float64 {
	voltage := raw
	if c.Resolution > 0 {
		voltage = raw * c.ReferenceVoltage / c.Resolution
	}
	return voltage + c.VoltageOffset
}

// Resistance returns the sensor resistance for the given divider voltage
func (c Pt100Converter) Resistance(voltage float64) (float64, error) {
	if !util.IsFinite(voltage) {
		return 0, fmt.Errorf("%w: voltage is %v", ErrSensorFault, voltage)
	}
	if voltage >= c.ReferenceVoltage {
		return 0, fmt.Errorf("%w: voltage %.4fV >= reference %.4fV", ErrSensorFault, voltage, c.ReferenceVoltage)
	}
	return pt100NominalResistance * voltage / (c.ReferenceVoltage - voltage), nil
}

// Temperature returns the temperature in °C for the given sensor resistance
func (c Pt100Converter) Temperature(resistance float64) float64 {
	return (resistance-pt100NominalResistance)/c.Coefficient + c.TemperatureOffset
}

// Convert runs the full raw -> voltage -> resistance -> temperature conversion.
// The voltage is returned even if the conversion fails.
func (c Pt100Converter) Convert(raw float64) (voltage float64, temperature float64, err error) {
	voltage = c.Voltage(raw)
	resistance, err := c.Resistance(voltage)
	if err != nil {
		return voltage, 0, err
	}
	temperature = c.Temperature(resistance)
	if !util.IsFinite(temperature) {
		return voltage, 0, fmt.Errorf("%w: temperature is %v", ErrSensorFault, temperature)
	}
	return voltage, temperature, nil
}
