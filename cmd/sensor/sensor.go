package sensor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/filter"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var rawOnly bool

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Read the configured sensor once and print the converted values",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rawOnly {
			pterm.DisableOutput()
		}

		sensor, err := getSensor()
		if err != nil {
			return err
		}
		if closer, ok := sensor.(io.Closer); ok {
			defer closer.Close()
		}

		raw, err := sensor.ReadRaw()
		if err != nil {
			return err
		}
		if rawOnly {
			fmt.Printf("%v", raw)
			return nil
		}

		converter := filter.NewPt100Converter(configuration.CurrentConfig.Adc, configuration.CurrentConfig.Pt100)
		out, err := formatReading(converter, raw)
		if err != nil {
			return err
		}
		ui.Printfln("%s", out)
		return nil
	},
}

func init() {
	Command.Flags().BoolVarP(&rawOnly, "raw", "r", false, "Only print the raw value")
}

func getSensor() (sensors.Sensor, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	return sensors.NewSensor(configuration.CurrentConfig.Sensor)
}

// formatReading renders all conversion steps of a raw reading as a table
func formatReading(converter filter.Pt100Converter, raw float64) (string, error) {
	voltage := converter.Voltage(raw)
	rows := [][]string{
		{"Raw", fmt.Sprintf("%v", raw)},
		{"Voltage", fmt.Sprintf("%.4f V", voltage)},
	}

	resistance, err := converter.Resistance(voltage)
	if err != nil {
		rows = append(rows, []string{"Error", err.Error()})
	} else {
		rows = append(rows,
			[]string{"Resistance", fmt.Sprintf("%.3f Ω", resistance)},
			[]string{"Temperature", fmt.Sprintf("%.2f °C", converter.Temperature(resistance))},
		)
	}

	tab := table.Table{
		Headers: []string{"", ""},
		Rows:    rows,
	}
	var buf bytes.Buffer
	err = tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
