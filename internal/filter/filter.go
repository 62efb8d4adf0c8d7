package filter

import (
	"math"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

// TemperatureFilter turns raw sensor readings into a low noise temperature estimate.
//
// Samples are collected in a circular buffer. Once the buffer is filled, its sorted
// content is reduced to the mean of a fixed middle slice (trimmed mean) to reject
// outliers, which is then exponentially smoothed.
//
// A TemperatureFilter is owned by a single control loop and must not be shared.
type TemperatureFilter struct {
	converter Pt100Converter
	buffer    *SampleBuffer

	trimLow  int
	trimHigh int
	alpha    float64
	// recompute on every sample instead of on every wraparound
	rolling bool

	smoothed        float64
	hasEstimate     bool
	lastTrimmedMean float64
	lastVoltage     float64

	sensorFault bool
	faultCount  int
}

func NewTemperatureFilter(config configuration.FilterConfig, converter Pt100Converter) (*TemperatureFilter, error) {
	if config.BufferSize <= 0 || config.TrimLow < 0 || config.TrimLow >= config.TrimHigh || config.TrimHigh >= config.BufferSize {
		return nil, configuration.ConfigError{Section: "filter", Message: "invalid buffer size or trim window"}
	}
	if !(config.SmoothingFactor > 0 && config.SmoothingFactor < 1) {
		return nil, configuration.ConfigError{Section: "filter", Message: "smoothingFactor must be in (0, 1)"}
	}

	return &TemperatureFilter{
		converter: converter,
		buffer:    NewSampleBuffer(config.BufferSize),
		trimLow:   config.TrimLow,
		trimHigh:  config.TrimHigh,
		alpha:     config.SmoothingFactor,
		rolling:   config.Mode == configuration.FilterModeRolling,
	}, nil
}

// Ingest converts the raw reading and adds it to the buffer.
// updated is true if a new estimate has been computed by this call, otherwise
// the previous estimate is returned unchanged.
//
// Readings that cannot be converted (see ErrSensorFault) are not added to the
// buffer, the last valid estimate is held and the fault is flagged.
func (f *TemperatureFilter) Ingest(raw float64) (estimate float64, updated bool, err error) {
	voltage, temperature, err := f.converter.Convert(raw)
	f.lastVoltage = voltage
	if err != nil {
		f.sensorFault = true
		f.faultCount++
		return f.smoothed, false, err
	}
	f.sensorFault = false

	wrapped := f.buffer.Append(temperature)
	if !f.buffer.IsFilled() {
		return f.smoothed, false, nil
	}
	if !wrapped && !f.rolling {
		return f.smoothed, false, nil
	}

	f.update()
	return f.smoothed, true, nil
}

func (f *TemperatureFilter) update() {
	trimmedMean := f.trimmedMean()
	f.lastTrimmedMean = trimmedMean

	if !f.hasEstimate {
		f.smoothed = trimmedMean
		f.hasEstimate = true
		return
	}
	f.smoothed = f.alpha*trimmedMean + (1-f.alpha)*f.smoothed
}

func (f *TemperatureFilter) trimmedMean() float64 {
	return util.TrimmedMean(f.buffer.Sorted(), f.trimLow, f.trimHigh)
}

// Estimate returns the current smoothed temperature, ok is false
// until the first estimate has been computed.
func (f *TemperatureFilter) Estimate() (value float64, ok bool) {
	if !f.hasEstimate {
		return math.NaN(), false
	}
	return f.smoothed, true
}

// LastVoltage returns the voltage of the most recent reading, faulty or not
func (f *TemperatureFilter) LastVoltage() float64 {
	return f.lastVoltage
}

func (f *TemperatureFilter) LastTrimmedMean() float64 {
	return f.lastTrimmedMean
}

// SensorFault returns true if the most recent reading was faulty
func (f *TemperatureFilter) SensorFault() bool {
	return f.sensorFault
}

func (f *TemperatureFilter) FaultCount() int {
	return f.faultCount
}

func (f *TemperatureFilter) Buffer() *SampleBuffer {
	return f.buffer
}
