//go:build linux

package heaters

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/warthog618/go-gpiocdev"
)

// NewGpioRelay requests the configured line as an output, initially inactive
func NewGpioRelay(config configuration.RelayConfig) (*GpioRelay, error) {
	conf := config.Gpio

	options := []gpiocdev.LineReqOption{
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer("heat2go"),
	}
	if conf.ActiveLevel.IsActiveLow() {
		options = append(options, gpiocdev.AsActiveLow)
	}

	line, err := gpiocdev.RequestLine(conf.Chip, conf.Line, options...)
	if err != nil {
		return nil, fmt.Errorf("relay %s: request line %d on %s: %w", config.ID, conf.Line, conf.Chip, err)
	}

	return &GpioRelay{
		Config: config,
		line:   line,
	}, nil
}
