package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/markusressel/heat2go/internal/actuator"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/control_loop"
	"github.com/markusressel/heat2go/internal/filter"
	"github.com/markusressel/heat2go/internal/heaters"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/markusressel/heat2go/internal/telemetry"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
)

type HeaterController interface {
	// Run samples the sensor and drives the relay until the context is cancelled.
	// The relay is switched off before returning.
	Run(ctx context.Context) error

	// Step runs a single iteration of the control loop at the given point in time
	Step(now time.Time) telemetry.Snapshot
}

// heaterController runs the sensor -> filter -> PI -> PWM -> relay pipeline sequentially.
type heaterController struct {
	id           string
	samplingRate time.Duration
	setpoint     float64

	sensor   sensors.Sensor
	relay    heaters.Relay
	filter   *filter.TemperatureFilter
	loop     *control_loop.PiControlLoop
	actuator *actuator.PwmActuator
	store    *telemetry.Store
	clock    util.Clock

	started time.Time

	// true once the relay state has been written at least once
	relayKnown bool
	relayOn    bool

	readErrorCount int
	readFailing    bool
}

func NewHeaterController(
	config configuration.Configuration,
	sensor sensors.Sensor,
	relay heaters.Relay,
	store *telemetry.Store,
	clock util.Clock,
) (HeaterController, error) {
	converter := filter.NewPt100Converter(config.Adc, config.Pt100)
	temperatureFilter, err := filter.NewTemperatureFilter(config.Filter, converter)
	if err != nil {
		return nil, err
	}

	now := clock.Now()
	duty := actuator.NewDutyCycle(config.Controller.MinDuty)

	return &heaterController{
		id:           config.ID,
		samplingRate: config.Sensor.SamplingRate,
		setpoint:     config.Controller.Setpoint,
		sensor:       sensor,
		relay:        relay,
		filter:       temperatureFilter,
		loop:         control_loop.NewPiControlLoop(config.Controller, duty, now),
		actuator:     actuator.NewPwmActuator(now, config.Pwm.Period, duty),
		store:        store,
		clock:        clock,
		started:      now,
	}, nil
}

func (c *heaterController) Run(ctx context.Context) error {
	ui.Info("Starting control loop '%s' (setpoint %.2f°C)", c.id, c.setpoint)

	ticker := time.NewTicker(c.samplingRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping control loop '%s'...", c.id)
			return c.shutdown()
		case <-ticker.C:
			c.Step(c.clock.Now())
		}
	}
}

func (c *heaterController) Step(now time.Time) telemetry.Snapshot {
	c.sample()

	if estimate, ok := c.filter.Estimate(); ok {
		c.loop.Tick(now, estimate, c.setpoint)
	}

	on := c.actuator.Drive(now)
	c.setRelay(on)

	snapshot := c.snapshot(now)
	c.store.Put(snapshot)
	return snapshot
}

// sample reads the sensor and feeds the reading to the filter
func (c *heaterController) sample() {
	raw, err := c.sensor.ReadRaw()
	if err != nil {
		c.readErrorCount++
		if !c.readFailing {
			ui.Warning("Unable to read sensor %s: %v", c.sensor.GetId(), err)
		}
		c.readFailing = true
		return
	}
	if c.readFailing {
		ui.Info("Sensor %s recovered after %d read errors", c.sensor.GetId(), c.readErrorCount)
	}
	c.readFailing = false

	wasFaulty := c.filter.SensorFault()
	_, _, err = c.filter.Ingest(raw)
	if err != nil && !wasFaulty {
		ui.Warning("Sensor %s: %v, holding last estimate", c.sensor.GetId(), err)
	} else if err == nil && wasFaulty {
		ui.Info("Sensor %s: fault cleared", c.sensor.GetId())
	}
}

// setRelay writes the relay only if the requested state differs from the last written one
func (c *heaterController) setRelay(on bool) {
	if c.relayKnown && c.relayOn == on {
		return
	}
	err := c.relay.Set(on)
	if err != nil {
		ui.Error("Error switching relay %s: %v", c.relay.GetId(), err)
		c.relayKnown = false
		return
	}
	c.relayKnown = true
	c.relayOn = on
}

func (c *heaterController) snapshot(now time.Time) telemetry.Snapshot {
	temperature, hasTemperature := c.filter.Estimate()
	if !hasTemperature {
		temperature = 0
	}

	buffer := c.filter.Buffer()
	bufferFill := buffer.Index()
	if buffer.IsFilled() {
		bufferFill = buffer.Size()
	}

	return telemetry.Snapshot{
		Id:                c.id,
		Time:              now,
		Elapsed:           now.Sub(c.started),
		LastVoltage:       finiteOrZero(c.filter.LastVoltage()),
		Temperature:       temperature,
		HasTemperature:    hasTemperature,
		Setpoint:          c.setpoint,
		TrimmedMean:       c.filter.LastTrimmedMean(),
		BufferFill:        bufferFill,
		LastControlUpdate: c.loop.LastTick(),
		LastError:         c.loop.LastError(),
		LastPower:         c.loop.LastPower(),
		Duty:              c.loop.Duty(),
		RelayOn:           c.relayKnown && c.relayOn,
		SensorFault:       c.filter.SensorFault(),
		FaultCount:        c.filter.FaultCount(),
		ReadErrorCount:    c.readErrorCount,
	}
}

// shutdown forces the relay off and releases sensor and relay
func (c *heaterController) shutdown() error {
	var errs []error
	if err := c.relay.Set(false); err != nil {
		ui.Error("Unable to switch off relay %s, make sure the heater is off!", c.relay.GetId())
		errs = append(errs, fmt.Errorf("switch off relay %s: %w", c.relay.GetId(), err))
	} else {
		c.relayKnown = true
		c.relayOn = false
	}
	c.store.Put(c.snapshot(c.clock.Now()))

	if err := c.relay.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close relay %s: %w", c.relay.GetId(), err))
	}
	if closer, ok := c.sensor.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sensor %s: %w", c.sensor.GetId(), err))
		}
	}
	return errors.Join(errs...)
}

func finiteOrZero(value float64) float64 {
	if !util.IsFinite(value) {
		return 0
	}
	return value
}
