package filter

import (
	"math"
	"testing"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func createConverter() Pt100Converter {
	return NewPt100Converter(
		configuration.AdcConfig{
			ReferenceVoltage: 5.0,
			Resolution:       0,
		},
		configuration.Pt100Config{
			Coefficient: 0.385,
		},
	)
}

// rawForTemperature returns the divider voltage a PT100 produces at the given temperature
func rawForTemperature(c Pt100Converter, temperature float64) float64 {
	resistance := pt100NominalResistance + (temperature-c.TemperatureOffset)*c.Coefficient
	return c.ReferenceVoltage*resistance/(pt100NominalResistance+resistance) - c.VoltageOffset
}

func TestPt100Converter_Voltage_AdcCounts(t *testing.T) {
	// GIVEN
	c := NewPt100Converter(
		configuration.AdcConfig{ReferenceVoltage: 5.0, Resolution: 1023, VoltageOffset: 0.1},
		configuration.Pt100Config{Coefficient: 0.385},
	)

	// WHEN
	voltage := c.Voltage(1023)

	// THEN
	assert.InDelta(t, 5.1, voltage, 1e-9)
}

func TestPt100Converter_Voltage_RawVolts(t *testing.T) {
	// GIVEN
	c := createConverter()

	// WHEN
	voltage := c.Voltage(2.5)

	// THEN
	assert.Equal(t, 2.5, voltage)
}

func TestPt100Converter_Convert_HalfReference(t *testing.T) {
	// GIVEN
	c := createConverter()

	// WHEN
	voltage, temperature, err := c.Convert(2.5)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 2.5, voltage)
	// R == 100 Ohm
	assert.InDelta(t, 0.0, temperature, 1e-9)
}

func TestPt100Converter_Convert_KnownTemperature(t *testing.T) {
	// GIVEN
	c := createConverter()
	c.TemperatureOffset = 1.5
	raw := rawForTemperature(c, 80)

	// WHEN
	_, temperature, err := c.Convert(raw)

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 80.0, temperature, 1e-9)
}

func TestPt100Converter_Convert_OpenSensor(t *testing.T) {
	// GIVEN
	c := createConverter()

	// WHEN
	voltage, _, err := c.Convert(5.0)

	// THEN
	assert.ErrorIs(t, err, ErrSensorFault)
	assert.Equal(t, 5.0, voltage)
}

func TestPt100Converter_Convert_NonFinite(t *testing.T) {
	// GIVEN
	c := createConverter()

	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		// WHEN
		_, _, err := c.Convert(raw)

		// THEN
		assert.ErrorIs(t, err, ErrSensorFault)
	}
}
