package heaters

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/configuration"
)

const (
	StateOn  = "on"
	StateOff = "off"
)

// Relay switches the heating element, typically through a solid state relay.
type Relay interface {
	GetId() string

	GetConfig() configuration.RelayConfig

	// Set switches the relay on or off
	Set(on bool) error

	// IsOn returns the last state that has been successfully set
	IsOn() bool

	// Close releases all resources held by this relay.
	// It does not change the relay state.
	Close() error
}

func NewRelay(config configuration.RelayConfig) (Relay, error) {
	if config.Gpio != nil {
		relay, err := NewGpioRelay(config)
		if err != nil {
			return nil, err
		}
		return relay, nil
	}

	if config.File != nil {
		return &FileRelay{
			Config: config,
			On:     readFileRelayState(config.File.Path),
		}, nil
	}

	if config.Cmd != nil {
		return &CmdRelay{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching relay type for relay: %s", config.ID)
}

func stateName(on bool) string {
	if on {
		return StateOn
	}
	return StateOff
}
