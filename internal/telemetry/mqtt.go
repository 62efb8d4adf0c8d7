package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/markusressel/heat2go/internal/configuration"
)

const (
	mqttConnectTimeout = 10 * time.Second
	mqttPublishTimeout = 5 * time.Second
)

// MqttPublisher publishes snapshots as JSON to an MQTT broker
type MqttPublisher struct {
	client paho.Client
	topic  string
}

// NewMqttPublisher connects to the configured broker
func NewMqttPublisher(config configuration.MqttConfig) (*MqttPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientId).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("mqtt: connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect to broker: %w", err)
	}

	return &MqttPublisher{
		client: client,
		topic:  config.Topic,
	}, nil
}

func (p *MqttPublisher) Name() string {
	return "mqtt"
}

// Report publishes the snapshot to "<topic>/<id>"
func (p *MqttPublisher) Report(snapshot Snapshot) error {
	payload, err := FormatPayload(snapshot)
	if err != nil {
		return fmt.Errorf("mqtt: format payload: %w", err)
	}

	// QoS 0, not retained
	token := p.client.Publish(Topic(p.topic, snapshot.Id), 0, false, payload)
	if !token.WaitTimeout(mqttPublishTimeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish: %w", err)
	}
	return nil
}

func (p *MqttPublisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}

func Topic(base string, id string) string {
	return fmt.Sprintf("%s/%s", base, id)
}

// Payload is the MQTT message structure of a snapshot
type Payload struct {
	Timestamp   string   `json:"timestamp"`
	Id          string   `json:"id"`
	Temperature *float64 `json:"temperature"`
	Setpoint    float64  `json:"setpoint"`
	Voltage     float64  `json:"voltage"`
	Power       float64  `json:"power"`
	Duty        float64  `json:"duty"`
	Relay       string   `json:"relay"`
	SensorFault bool     `json:"sensorFault"`
}

func FormatPayload(s Snapshot) ([]byte, error) {
	payload := Payload{
		Timestamp:   s.Time.UTC().Format(time.RFC3339Nano),
		Id:          s.Id,
		Setpoint:    s.Setpoint,
		Voltage:     s.LastVoltage,
		Power:       s.LastPower,
		Duty:        s.Duty,
		Relay:       "OFF",
		SensorFault: s.SensorFault,
	}
	if s.HasTemperature {
		temperature := s.Temperature
		payload.Temperature = &temperature
	}
	if s.RelayOn {
		payload.Relay = "ON"
	}
	return json.Marshal(payload)
}
