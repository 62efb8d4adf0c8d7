package configuration

type RelayConfig struct {
	ID string `json:"id"`

	Gpio *GpioRelayConfig `json:"gpio,omitempty"`
	File *FileRelayConfig `json:"file,omitempty"`
	Cmd  *CmdRelayConfig  `json:"cmd,omitempty"`
}

type GpioRelayConfig struct {
	// GPIO chip name, f.ex. gpiochip0
	Chip string `json:"chip"`
	// line offset on the chip
	Line        int         `json:"line"`
	ActiveLevel ActiveLevel `json:"activeLevel"`
}

type FileRelayConfig struct {
	Path string `json:"path"`
}

// CmdRelayConfig runs Exec with Args followed by "on" or "off"
type CmdRelayConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
