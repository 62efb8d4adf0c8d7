package configuration

import (
	"fmt"
	"math"
	"strings"

	"github.com/markusressel/heat2go/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if len(strings.TrimSpace(config.ID)) <= 0 {
		return newConfigError("id", "must not be empty")
	}

	validators := []func(config *Configuration) error{
		validateSensor,
		validateAdc,
		validateFilter,
		validateController,
		validatePwm,
		validateRelay,
		validateTelemetry,
	}
	for _, validator := range validators {
		if err := validator(config); err != nil {
			return err
		}
	}

	if containsCmd(config) && len(path) > 0 {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return newConfigError("config", "config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCmd(config *Configuration) bool {
	return config.Sensor.Cmd != nil || config.Relay.Cmd != nil
}

func validateSensor(config *Configuration) error {
	sensorConfig := config.Sensor

	subConfigs := 0
	if sensorConfig.File != nil {
		subConfigs++
	}
	if sensorConfig.Cmd != nil {
		subConfigs++
	}
	if sensorConfig.Serial != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return newConfigError("sensor", "only one sensor type can be used")
	}
	if subConfigs <= 0 {
		return newConfigError("sensor", "sub-configuration for sensor is missing, use one of: file | cmd | serial")
	}

	if sensorConfig.SamplingRate <= 0 {
		return newConfigError("sensor", "samplingRate must be > 0")
	}

	if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
		return newConfigError("sensor", "no file path provided")
	}
	if sensorConfig.Cmd != nil && len(sensorConfig.Cmd.Exec) <= 0 {
		return newConfigError("sensor", "executable is missing")
	}
	if sensorConfig.Serial != nil {
		if len(sensorConfig.Serial.Port) <= 0 {
			return newConfigError("sensor", "serial port is missing")
		}
		if sensorConfig.Serial.BaudRate < 0 {
			return newConfigError("sensor", "invalid baudRate %d", sensorConfig.Serial.BaudRate)
		}
	}

	return nil
}

func validateAdc(config *Configuration) error {
	if !(config.Adc.ReferenceVoltage > 0) || !util.IsFinite(config.Adc.ReferenceVoltage) {
		return newConfigError("adc", "referenceVoltage must be a finite value > 0")
	}
	if !(config.Adc.Resolution >= 0) || !util.IsFinite(config.Adc.Resolution) {
		return newConfigError("adc", "resolution must be a finite value >= 0")
	}
	if !util.IsFinite(config.Adc.VoltageOffset) {
		return newConfigError("adc", "voltageOffset must be a finite value, got %v", config.Adc.VoltageOffset)
	}
	if config.Pt100.Coefficient == 0 || !util.IsFinite(config.Pt100.Coefficient) {
		return newConfigError("pt100", "coefficient must be a finite, non-zero value")
	}
	if !util.IsFinite(config.Pt100.TemperatureOffset) {
		return newConfigError("pt100", "temperatureOffset must be a finite value, got %v", config.Pt100.TemperatureOffset)
	}
	return nil
}

func validateFilter(config *Configuration) error {
	filterConfig := config.Filter

	if filterConfig.BufferSize <= 0 {
		return newConfigError("filter", "bufferSize must be > 0")
	}
	if filterConfig.TrimLow < 0 || filterConfig.TrimLow >= filterConfig.TrimHigh || filterConfig.TrimHigh >= filterConfig.BufferSize {
		return newConfigError("filter", "trim window must satisfy 0 <= trimLow < trimHigh < bufferSize, got %d..%d with bufferSize %d",
			filterConfig.TrimLow, filterConfig.TrimHigh, filterConfig.BufferSize)
	}
	if !(filterConfig.SmoothingFactor > 0 && filterConfig.SmoothingFactor < 1) {
		return newConfigError("filter", "smoothingFactor must be in (0, 1), got %v", filterConfig.SmoothingFactor)
	}

	supportedModes := []string{FilterModeWraparound, FilterModeRolling}
	if !slices.Contains(supportedModes, filterConfig.Mode) {
		return newConfigError("filter", "unsupported mode '%s', use one of: %s", filterConfig.Mode, strings.Join(supportedModes, " | "))
	}

	return nil
}

func validateController(config *Configuration) error {
	controllerConfig := config.Controller

	for name, value := range map[string]float64{
		"k1":       controllerConfig.K1,
		"k2":       controllerConfig.K2,
		"setpoint": controllerConfig.Setpoint,
	} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return newConfigError("controller", "%s must be a finite value", name)
		}
	}

	if controllerConfig.Period <= 0 {
		return newConfigError("controller", "period must be > 0")
	}
	if !(controllerConfig.MaxPower > 0) {
		return newConfigError("controller", "maxPower must be > 0")
	}
	if controllerConfig.MinDuty < 0 || controllerConfig.MaxDuty > 1 {
		return newConfigError("controller", "duty bounds must be within [0, 1]")
	}
	if controllerConfig.MinDuty >= controllerConfig.MaxDuty {
		return newConfigError("controller", "minDuty (%v) must be < maxDuty (%v)", controllerConfig.MinDuty, controllerConfig.MaxDuty)
	}
	return nil
}

func validatePwm(config *Configuration) error {
	if config.Pwm.Period <= 0 {
		return newConfigError("pwm", "period must be > 0")
	}
	return nil
}

func validateRelay(config *Configuration) error {
	relayConfig := config.Relay

	subConfigs := 0
	if relayConfig.Gpio != nil {
		subConfigs++
	}
	if relayConfig.File != nil {
		subConfigs++
	}
	if relayConfig.Cmd != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return newConfigError("relay", "only one relay type can be used")
	}
	if subConfigs <= 0 {
		return newConfigError("relay", "sub-configuration for relay is missing, use one of: gpio | file | cmd")
	}

	if relayConfig.Gpio != nil {
		if len(relayConfig.Gpio.Chip) <= 0 {
			return newConfigError("relay", "gpio chip is missing")
		}
		if relayConfig.Gpio.Line < 0 {
			return newConfigError("relay", "invalid gpio line %d, must be >= 0", relayConfig.Gpio.Line)
		}
	}
	if relayConfig.File != nil && len(relayConfig.File.Path) <= 0 {
		return newConfigError("relay", "no file path provided")
	}
	if relayConfig.Cmd != nil && len(relayConfig.Cmd.Exec) <= 0 {
		return newConfigError("relay", "executable is missing")
	}
	return nil
}

func validateTelemetry(config *Configuration) error {
	if config.Telemetry.Interval <= 0 {
		return newConfigError("telemetry", "interval must be > 0")
	}
	if config.Telemetry.Mqtt.Enabled {
		if len(config.Telemetry.Mqtt.Broker) <= 0 {
			return newConfigError("telemetry", "mqtt broker is missing")
		}
		if len(config.Telemetry.Mqtt.Topic) <= 0 {
			return newConfigError("telemetry", "mqtt topic is missing")
		}
	}
	if config.History.Enabled {
		if len(config.DbPath) <= 0 {
			return newConfigError("history", "dbPath is missing")
		}
		if config.History.MaxAge < 0 {
			return newConfigError("history", "maxAge must be >= 0")
		}
	}
	if config.Statistics.Enabled && (config.Statistics.Port <= 0 || config.Statistics.Port > 65535) {
		return newConfigError("statistics", "invalid port %d", config.Statistics.Port)
	}
	if config.Api.Enabled && (config.Api.Port <= 0 || config.Api.Port > 65535) {
		return newConfigError("api", "invalid port %d", config.Api.Port)
	}
	return nil
}

// Summary renders a short summary of the control parameters
func (c Configuration) Summary() string {
	return fmt.Sprintf("setpoint=%.1f°C K1=%v K2=%v period=%v pwm=%v", c.Controller.Setpoint, c.Controller.K1, c.Controller.K2, c.Controller.Period, c.Pwm.Period)
}
