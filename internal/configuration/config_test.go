package configuration

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// GIVEN
	viper.Reset()
	setDefaultValues()
	viper.SetConfigType("yaml")
	err := viper.ReadConfig(bytes.NewBufferString(`
id: oven
sensor:
  samplingRate: 20ms
  file:
    path: /tmp/adc
controller:
  setpoint: 120
  period: 2s
relay:
  gpio:
    chip: gpiochip0
    line: 17
    activeLevel: low
`))
	assert.NoError(t, err)

	// WHEN
	LoadConfig()

	// THEN
	assert.Equal(t, "oven", CurrentConfig.ID)
	assert.Equal(t, 20*time.Millisecond, CurrentConfig.Sensor.SamplingRate)
	assert.Equal(t, "/tmp/adc", CurrentConfig.Sensor.File.Path)
	assert.Nil(t, CurrentConfig.Sensor.Cmd)
	assert.Equal(t, 120.0, CurrentConfig.Controller.Setpoint)
	assert.Equal(t, 2*time.Second, CurrentConfig.Controller.Period)
	assert.Equal(t, 17, CurrentConfig.Relay.Gpio.Line)
	assert.Equal(t, ActiveLow, CurrentConfig.Relay.Gpio.ActiveLevel)

	// defaults
	assert.Equal(t, 60, CurrentConfig.Filter.BufferSize)
	assert.Equal(t, 25, CurrentConfig.Filter.TrimLow)
	assert.Equal(t, 34, CurrentConfig.Filter.TrimHigh)
	assert.Equal(t, 11.94, CurrentConfig.Controller.K1)
	assert.Equal(t, 12.05, CurrentConfig.Controller.K2)
	assert.Equal(t, 1000.0, CurrentConfig.Controller.MaxPower)
	assert.Equal(t, time.Second, CurrentConfig.Pwm.Period)

	assert.NoError(t, validateConfig(&CurrentConfig, ""))
}
