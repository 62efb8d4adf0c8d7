package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/telemetry"
	"github.com/markusressel/heat2go/internal/testingutils"
	"github.com/markusressel/heat2go/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const referenceVoltage = 5.0

type MockSensor struct {
	ID    string
	Value float64
	Err   error
	Reads int
}

func (sensor *MockSensor) GetId() string {
	return sensor.ID
}

func (sensor *MockSensor) GetConfig() configuration.SensorConfig {
	panic("not implemented")
}

func (sensor *MockSensor) ReadRaw() (float64, error) {
	sensor.Reads++
	return sensor.Value, sensor.Err
}

type MockRelay struct {
	ID     string
	mu     sync.Mutex
	Writes []bool
	Err    error
	Closed bool
}

func (relay *MockRelay) GetId() string {
	return relay.ID
}

func (relay *MockRelay) GetConfig() configuration.RelayConfig {
	panic("not implemented")
}

func (relay *MockRelay) Set(on bool) error {
	relay.mu.Lock()
	defer relay.mu.Unlock()
	if relay.Err != nil {
		return relay.Err
	}
	relay.Writes = append(relay.Writes, on)
	return nil
}

func (relay *MockRelay) IsOn() bool {
	relay.mu.Lock()
	defer relay.mu.Unlock()
	return len(relay.Writes) > 0 && relay.Writes[len(relay.Writes)-1]
}

func (relay *MockRelay) Close() error {
	relay.Closed = true
	return nil
}

// voltageFor returns the divider voltage of a PT100 at the given temperature
func voltageFor(temperature float64) float64 {
	resistance := 100 + temperature*0.385
	return referenceVoltage * resistance / (100 + resistance)
}

func createConfig() configuration.Configuration {
	return configuration.Configuration{
		ID: "heater",
		Sensor: configuration.SensorConfig{
			ID:           "pt100",
			SamplingRate: 1 * time.Millisecond,
		},
		Adc: configuration.AdcConfig{
			ReferenceVoltage: referenceVoltage,
			Resolution:       0,
		},
		Pt100: configuration.Pt100Config{
			Coefficient: 0.385,
		},
		Filter: configuration.FilterConfig{
			BufferSize:      4,
			TrimLow:         1,
			TrimHigh:        2,
			SmoothingFactor: 0.5,
			Mode:            configuration.FilterModeWraparound,
		},
		Controller: configuration.ControllerConfig{
			K1:       11.94,
			K2:       12.05,
			Period:   1 * time.Second,
			MaxPower: 1000,
			MinDuty:  0.01,
			MaxDuty:  0.95,
			Setpoint: 80,
		},
		Pwm: configuration.PwmConfig{
			Period: 1 * time.Second,
		},
	}
}

func createController(t *testing.T, sensor *MockSensor, relay *MockRelay, clock util.Clock) (*heaterController, *telemetry.Store) {
	store := telemetry.NewStore()
	c, err := NewHeaterController(createConfig(), sensor, relay, store, clock)
	require.NoError(t, err)
	return c.(*heaterController), store
}

func TestNewHeaterController_InvalidFilter(t *testing.T) {
	// GIVEN
	config := createConfig()
	config.Filter.TrimHigh = 4

	// WHEN
	_, err := NewHeaterController(config, &MockSensor{}, &MockRelay{}, telemetry.NewStore(), testingutils.NewManualClock(start))

	// THEN
	assert.Error(t, err)
}

func TestHeaterController_NoControlBeforeFirstEstimate(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	sensor := &MockSensor{ID: "pt100", Value: voltageFor(20)}
	c, store := createController(t, sensor, &MockRelay{ID: "ssr"}, clock)

	// WHEN
	var snapshot telemetry.Snapshot
	for i := 0; i < 3; i++ {
		snapshot = c.Step(clock.Advance(time.Second))
	}

	// THEN
	assert.False(t, snapshot.HasTemperature)
	assert.Equal(t, 0.0, snapshot.LastPower)
	assert.Equal(t, 0.01, snapshot.Duty)
	assert.Equal(t, 3, snapshot.BufferFill)
	assert.Equal(t, start, snapshot.LastControlUpdate)
	stored, ok := store.Get("heater")
	assert.True(t, ok)
	assert.Equal(t, snapshot, stored)
}

func TestHeaterController_ControlsOnceEstimateExists(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	sensor := &MockSensor{ID: "pt100", Value: voltageFor(20)}
	c, _ := createController(t, sensor, &MockRelay{ID: "ssr"}, clock)

	// WHEN
	var snapshot telemetry.Snapshot
	for i := 0; i < 4; i++ {
		snapshot = c.Step(clock.Advance(time.Second))
	}

	// THEN
	assert.True(t, snapshot.HasTemperature)
	assert.InDelta(t, 20.0, snapshot.Temperature, 1e-9)
	assert.InDelta(t, 60.0, snapshot.LastError, 1e-9)
	// 12.05 * 60
	assert.InDelta(t, 723.0, snapshot.LastPower, 1e-9)
	assert.InDelta(t, 0.723, snapshot.Duty, 1e-9)
	assert.InDelta(t, voltageFor(20), snapshot.LastVoltage, 1e-12)
	assert.Equal(t, 4*time.Second, snapshot.Elapsed)
	assert.InDelta(t, 20.0, snapshot.TrimmedMean, 1e-9)
	assert.Equal(t, 4, snapshot.BufferFill)
	assert.Equal(t, start.Add(4*time.Second), snapshot.LastControlUpdate)
}

func TestHeaterController_RelayWrittenOnlyOnChange(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	sensor := &MockSensor{ID: "pt100", Value: voltageFor(20)}
	relay := &MockRelay{ID: "ssr"}
	c, _ := createController(t, sensor, relay, clock)

	// fill the filter and run the controller once, duty is 0.723 afterwards
	for i := 0; i < 4; i++ {
		c.Step(clock.Advance(time.Second))
	}
	relay.Writes = nil

	// WHEN
	// two full pwm periods in 10ms steps
	for i := 0; i < 200; i++ {
		clock.Advance(10 * time.Millisecond)
		c.Step(clock.Now())
	}

	// THEN
	// on at the start of each period, off after ~73% of it
	assert.Equal(t, []bool{false, true, false, true}, relay.Writes)
}

func TestHeaterController_ReadErrorIsCounted(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	sensor := &MockSensor{ID: "pt100", Err: errors.New("i/o error")}
	c, _ := createController(t, sensor, &MockRelay{ID: "ssr"}, clock)

	// WHEN
	c.Step(clock.Advance(time.Millisecond))
	snapshot := c.Step(clock.Advance(time.Millisecond))

	// THEN
	assert.Equal(t, 2, snapshot.ReadErrorCount)
	assert.False(t, snapshot.SensorFault)
	assert.Equal(t, 0, c.filter.Buffer().Index())
}

func TestHeaterController_SensorFault(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	sensor := &MockSensor{ID: "pt100", Value: voltageFor(50)}
	c, _ := createController(t, sensor, &MockRelay{ID: "ssr"}, clock)
	for i := 0; i < 4; i++ {
		c.Step(clock.Advance(time.Second))
	}

	// WHEN
	sensor.Value = referenceVoltage
	snapshot := c.Step(clock.Advance(time.Second))

	// THEN
	assert.True(t, snapshot.SensorFault)
	assert.Equal(t, 1, snapshot.FaultCount)
	assert.True(t, snapshot.HasTemperature)
	assert.InDelta(t, 50.0, snapshot.Temperature, 1e-9)
	assert.Equal(t, referenceVoltage, snapshot.LastVoltage)
}

func TestHeaterController_RelayErrorRetries(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	sensor := &MockSensor{ID: "pt100", Value: voltageFor(20)}
	relay := &MockRelay{ID: "ssr", Err: errors.New("busy")}
	c, _ := createController(t, sensor, relay, clock)

	// WHEN
	snapshot := c.Step(clock.Now())
	relay.Err = nil
	c.Step(clock.Now())

	// THEN
	assert.False(t, snapshot.RelayOn)
	assert.Equal(t, []bool{true}, relay.Writes)
}

func TestHeaterController_RunSwitchesRelayOffOnShutdown(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "pt100", Value: voltageFor(20)}
	relay := &MockRelay{ID: "ssr"}
	c, store := createController(t, sensor, relay, util.SystemClock)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// WHEN
	err := c.Run(ctx)

	// THEN
	assert.NoError(t, err)
	assert.Greater(t, sensor.Reads, 0)
	require.NotEmpty(t, relay.Writes)
	assert.False(t, relay.Writes[len(relay.Writes)-1])
	assert.True(t, relay.Closed)
	snapshot, ok := store.Get("heater")
	assert.True(t, ok)
	assert.False(t, snapshot.RelayOn)
}
