package control_loop

import (
	"testing"
	"time"

	"github.com/markusressel/heat2go/internal/actuator"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/testingutils"
	"github.com/stretchr/testify/assert"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func createControllerConfig() configuration.ControllerConfig {
	return configuration.ControllerConfig{
		K1:       11.94,
		K2:       12.05,
		Period:   1 * time.Second,
		MaxPower: 1000,
		MinDuty:  0.01,
		MaxDuty:  0.95,
		Setpoint: 80,
	}
}

func TestPiControlLoop_InitialDuty(t *testing.T) {
	// GIVEN
	duty := actuator.NewDutyCycle(0.5)

	// WHEN
	loop := NewPiControlLoop(createControllerConfig(), duty, start)

	// THEN
	assert.Equal(t, 0.01, duty.Load())
	assert.Equal(t, 0.01, loop.Duty())
	assert.Equal(t, start, loop.LastTick())
}

func TestPiControlLoop_ClampsToMaxPower(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	duty := actuator.NewDutyCycle(0)
	loop := NewPiControlLoop(createControllerConfig(), duty, clock.Now())

	// WHEN
	result, executed := loop.Tick(clock.Advance(time.Second), 0, 80)

	// THEN
	assert.True(t, executed)
	// 12.05 * 80 = 964, clamped to 1000 * 0.95
	assert.InDelta(t, 950.0, loop.LastPower(), 1e-9)
	assert.InDelta(t, 0.95, result, 1e-9)
	assert.InDelta(t, 0.95, duty.Load(), 1e-9)
	assert.Equal(t, 80.0, loop.LastError())
}

func TestPiControlLoop_ClampsToMinPower(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	loop := NewPiControlLoop(createControllerConfig(), actuator.NewDutyCycle(0), clock.Now())

	// WHEN
	result, executed := loop.Tick(clock.Advance(time.Second), 100, 80)

	// THEN
	assert.True(t, executed)
	assert.InDelta(t, 10.0, loop.LastPower(), 1e-9)
	assert.InDelta(t, 0.01, result, 1e-9)
}

func TestPiControlLoop_Recurrence(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	loop := NewPiControlLoop(createControllerConfig(), actuator.NewDutyCycle(0), clock.Now())

	// WHEN
	loop.Tick(clock.Advance(time.Second), 70, 80)
	result, executed := loop.Tick(clock.Advance(time.Second), 75, 80)

	// THEN
	assert.True(t, executed)
	firstPower := 12.05 * 10
	secondPower := -11.94*10 + 12.05*5 + firstPower
	assert.InDelta(t, secondPower, loop.LastPower(), 1e-9)
	assert.InDelta(t, secondPower/1000, result, 1e-9)
}

func TestPiControlLoop_Gating(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	duty := actuator.NewDutyCycle(0)
	loop := NewPiControlLoop(createControllerConfig(), duty, clock.Now())

	for i := 0; i < 100; i++ {
		// WHEN
		result, executed := loop.Tick(clock.Advance(time.Millisecond), 0, 80)

		// THEN
		assert.False(t, executed)
		assert.Equal(t, 0.01, result)
	}
	assert.Equal(t, 0.0, loop.LastPower())
	assert.Equal(t, 0.0, loop.LastError())
	assert.Equal(t, start, loop.LastTick())

	// WHEN
	clock.Set(start.Add(time.Second))
	_, executed := loop.Tick(clock.Now(), 0, 80)

	// THEN
	assert.True(t, executed)
	assert.Equal(t, clock.Now(), loop.LastTick())
}

func TestPiControlLoop_GatingDrift(t *testing.T) {
	// GIVEN
	clock := testingutils.NewManualClock(start)
	loop := NewPiControlLoop(createControllerConfig(), actuator.NewDutyCycle(0), clock.Now())
	loop.Tick(clock.Advance(1500*time.Millisecond), 79, 80)

	// WHEN
	_, early := loop.Tick(clock.Advance(900*time.Millisecond), 79, 80)
	_, due := loop.Tick(clock.Advance(100*time.Millisecond), 79, 80)

	// THEN
	assert.False(t, early)
	assert.True(t, due)
	assert.Equal(t, start.Add(2500*time.Millisecond), loop.LastTick())
}
