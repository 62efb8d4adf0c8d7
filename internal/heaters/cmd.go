package heaters

import (
	"fmt"
	"time"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

const cmdTimeout = 2 * time.Second

// CmdRelay runs the configured executable with "on" or "off" appended to its arguments
type CmdRelay struct {
	Config configuration.RelayConfig `json:"config"`
	On     bool                      `json:"on"`
}

func (relay *CmdRelay) GetId() string {
	return relay.Config.ID
}

func (relay *CmdRelay) GetConfig() configuration.RelayConfig {
	return relay.Config
}

func (relay *CmdRelay) Set(on bool) error {
	conf := relay.Config.Cmd
	args := append(append([]string{}, conf.Args...), stateName(on))

	_, err := util.SafeCmdExecution(conf.Exec, args, cmdTimeout)
	if err != nil {
		return fmt.Errorf("relay %s: unable to switch %s: %w", relay.GetId(), stateName(on), err)
	}
	relay.On = on
	return nil
}

func (relay *CmdRelay) IsOn() bool {
	return relay.On
}

func (relay *CmdRelay) Close() error {
	return nil
}
