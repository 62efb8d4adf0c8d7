package heaters

import (
	"fmt"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/util"
)

// FileRelay writes "1" or "0" to a file, f.ex. a sysfs gpio value
type FileRelay struct {
	Config configuration.RelayConfig `json:"config"`
	On     bool                      `json:"on"`
}

func (relay *FileRelay) GetId() string {
	return relay.Config.ID
}

func (relay *FileRelay) GetConfig() configuration.RelayConfig {
	return relay.Config
}

func (relay *FileRelay) Set(on bool) error {
	filePath, err := util.ExpandHomeDir(relay.Config.File.Path)
	if err != nil {
		return err
	}

	value := 0
	if on {
		value = 1
	}
	err = util.WriteIntToFileAtomic(value, filePath)
	if err != nil {
		return fmt.Errorf("relay %s: unable to switch %s: %w", relay.GetId(), stateName(on), err)
	}
	relay.On = on
	return nil
}

func (relay *FileRelay) IsOn() bool {
	return relay.On
}

func (relay *FileRelay) Close() error {
	return nil
}

// readFileRelayState returns true if the file currently holds a non-zero value.
// A missing or unreadable file is treated as off.
func readFileRelayState(path string) bool {
	filePath, err := util.ExpandHomeDir(path)
	if err != nil {
		return false
	}
	value, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return false
	}
	return value != 0
}
