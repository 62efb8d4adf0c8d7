package configuration

import (
	"os"
	"time"

	"github.com/markusressel/heat2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	// ID of the control loop, used as key for telemetry, history and metrics
	ID     string `json:"id"`
	DbPath string `json:"dbPath"`

	Sensor     SensorConfig     `json:"sensor"`
	Adc        AdcConfig        `json:"adc"`
	Pt100      Pt100Config      `json:"pt100"`
	Filter     FilterConfig     `json:"filter"`
	Controller ControllerConfig `json:"controller"`
	Pwm        PwmConfig        `json:"pwm"`
	Relay      RelayConfig      `json:"relay"`

	Telemetry  TelemetryConfig  `json:"telemetry"`
	History    HistoryConfig    `json:"history"`
	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("heat2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/heat2go/")
	}

	viper.SetEnvPrefix("heat2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("id", "heater")
	viper.SetDefault("dbPath", "/etc/heat2go/heat2go.db")

	// ~60 Hz
	viper.SetDefault("sensor.id", "pt100")
	viper.SetDefault("sensor.samplingRate", 16*time.Millisecond)

	viper.SetDefault("adc.referenceVoltage", 5.0)
	viper.SetDefault("adc.resolution", 1023)
	viper.SetDefault("adc.voltageOffset", 0.0)

	viper.SetDefault("pt100.coefficient", 0.385)
	viper.SetDefault("pt100.temperatureOffset", 0.0)

	viper.SetDefault("filter.bufferSize", 60)
	viper.SetDefault("filter.trimLow", 25)
	viper.SetDefault("filter.trimHigh", 34)
	viper.SetDefault("filter.smoothingFactor", 0.1)
	viper.SetDefault("filter.mode", FilterModeWraparound)

	viper.SetDefault("controller.k1", 11.94)
	viper.SetDefault("controller.k2", 12.05)
	viper.SetDefault("controller.period", 1*time.Second)
	viper.SetDefault("controller.maxPower", 1000.0)
	viper.SetDefault("controller.minDuty", 0.01)
	viper.SetDefault("controller.maxDuty", 0.95)
	viper.SetDefault("controller.setpoint", 80.0)

	viper.SetDefault("pwm.period", 1*time.Second)

	viper.SetDefault("relay.id", "ssr")

	viper.SetDefault("telemetry.interval", 1*time.Second)
	viper.SetDefault("telemetry.print", true)
	viper.SetDefault("telemetry.mqtt.enabled", false)
	viper.SetDefault("telemetry.mqtt.topic", "heat2go/telemetry")
	viper.SetDefault("telemetry.mqtt.clientId", "heat2go")

	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.maxAge", 24*time.Hour)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)
}

// DetectAndReadConfigFile reads the config file and returns its path
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			ActiveLevelHookFunc(),
		),
	))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
