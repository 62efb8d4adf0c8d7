package relay

import (
	"errors"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/heaters"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var (
	switchOn  bool
	switchOff bool
)

var Command = &cobra.Command{
	Use:   "relay",
	Short: "Switch the configured relay on or off, f.ex. to verify the wiring",
	Long: `Switch the configured relay on or off.
Make sure the heat2go daemon is not running, it would override the state immediately.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := requestedState(switchOn, switchOff)
		if err != nil {
			return err
		}

		relay, err := getRelay()
		if err != nil {
			return err
		}
		defer relay.Close()

		if err := relay.Set(on); err != nil {
			return err
		}
		if on {
			ui.Warning("Relay %s is ON, don't leave the heater unattended!", relay.GetId())
		} else {
			ui.Success("Relay %s is OFF", relay.GetId())
		}
		return nil
	},
}

func init() {
	Command.Flags().BoolVar(&switchOn, "on", false, "Switch the relay on")
	Command.Flags().BoolVar(&switchOff, "off", false, "Switch the relay off")
	Command.MarkFlagsMutuallyExclusive("on", "off")
}

func requestedState(on bool, off bool) (bool, error) {
	if on == off {
		return false, errors.New("exactly one of --on or --off is required")
	}
	return on, nil
}

func getRelay() (heaters.Relay, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	return heaters.NewRelay(configuration.CurrentConfig.Relay)
}
