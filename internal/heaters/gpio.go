package heaters

import (
	"github.com/markusressel/heat2go/internal/configuration"
)

// gpioLine is the part of a requested gpio output line used by GpioRelay
type gpioLine interface {
	SetValue(value int) error
	Close() error
}

// GpioRelay drives a GPIO output line of a Linux GPIO character device.
// Active low lines are inverted by the kernel, so "on" is always written as 1.
type GpioRelay struct {
	Config configuration.RelayConfig `json:"config"`
	On     bool                      `json:"on"`

	line gpioLine
}

func (relay *GpioRelay) GetId() string {
	return relay.Config.ID
}

func (relay *GpioRelay) GetConfig() configuration.RelayConfig {
	return relay.Config
}

func (relay *GpioRelay) Set(on bool) error {
	value := 0
	if on {
		value = 1
	}
	if err := relay.line.SetValue(value); err != nil {
		return err
	}
	relay.On = on
	return nil
}

func (relay *GpioRelay) IsOn() bool {
	return relay.On
}

func (relay *GpioRelay) Close() error {
	if relay.line == nil {
		return nil
	}
	err := relay.line.Close()
	relay.line = nil
	return err
}
