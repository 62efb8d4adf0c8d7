package config

import (
	"time"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Prints the effective configuration, including defaults, as YAML",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)

		out, err := marshalSettings(viper.AllSettings())
		if err != nil {
			return err
		}
		ui.Printf("%s", out)
		return nil
	},
}

func marshalSettings(settings map[string]interface{}) (string, error) {
	out, err := yaml.Marshal(normalizeSettings(settings))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// normalizeSettings renders durations in their human readable form
func normalizeSettings(settings map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(settings))
	for key, value := range settings {
		switch v := value.(type) {
		case map[string]interface{}:
			result[key] = normalizeSettings(v)
		case time.Duration:
			result[key] = v.String()
		default:
			result[key] = v
		}
	}
	return result
}

func init() {
	Command.AddCommand(printCmd)
}
