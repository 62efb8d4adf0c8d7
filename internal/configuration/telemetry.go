package configuration

import "time"

type TelemetryConfig struct {
	Interval time.Duration `json:"interval"`
	// Print a human readable status line on each interval
	Print bool       `json:"print"`
	Mqtt  MqttConfig `json:"mqtt"`
}

type MqttConfig struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	Topic    string `json:"topic"`
	ClientId string `json:"clientId"`
}

type HistoryConfig struct {
	Enabled bool `json:"enabled"`
	// records older than this are pruned
	MaxAge time.Duration `json:"maxAge"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}
