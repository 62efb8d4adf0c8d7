//go:build !linux

package heaters

import (
	"errors"

	"github.com/markusressel/heat2go/internal/configuration"
)

// NewGpioRelay returns an error on non-Linux platforms
func NewGpioRelay(config configuration.RelayConfig) (*GpioRelay, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}
