package config

import (
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		if err := configuration.Validate(configPath); err != nil {
			ui.FatalWithoutStacktrace("Validation failed: %v", err)
		}

		ui.Success("Config looks good! :)")
		ui.Printfln("%s", configuration.CurrentConfig.Summary())
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
