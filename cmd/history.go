package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/heat2go/cmd/global"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/markusressel/heat2go/internal/telemetry"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

const historyTableRows = 10

var (
	historySince time.Duration
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the recorded temperature history to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		loopId := configuration.CurrentConfig.ID

		if historyClear {
			if err := pers.DeleteHistory(loopId); err != nil {
				return err
			}
			ui.Success("Deleted history of %s", loopId)
			return nil
		}

		history, err := loadHistory(pers, loopId, time.Now().Add(-historySince))
		if err != nil {
			return err
		}
		if len(history) == 0 {
			ui.Printfln("No history recorded for %s yet...", loopId)
			if ids, err := pers.LoopIds(); err == nil && len(ids) > 0 {
				ui.Printfln("History is available for: %s", strings.Join(ids, ", "))
			}
			return nil
		}

		ui.Printfln("%s", loopId)
		tableString, err := formatHistoryTable(history, historyTableRows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)

		temperatures, duties := historySeries(history)
		if len(temperatures) > 0 {
			ui.Printfln("%s", formatTemperatureRange(temperatures))
			graph := asciigraph.Plot(temperatures, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption("Temperature °C"))
			ui.Printfln("%s", graph)
		}
		graph := asciigraph.Plot(duties, asciigraph.Height(5), asciigraph.Width(100), asciigraph.Caption("Duty %"))
		ui.Printfln("%s", graph)
		return nil
	},
}

// loadHistory returns the recorded history of the given loop,
// which is empty if nothing has been recorded yet
func loadHistory(pers persistence.Persistence, loopId string, since time.Time) ([]telemetry.Snapshot, error) {
	history, err := pers.LoadHistory(loopId, since)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load history of %s: %w", loopId, err)
	}
	return history, nil
}

// formatHistoryTable renders the last rows of the history as a table
func formatHistoryTable(history []telemetry.Snapshot, rows int) (string, error) {
	if len(history) > rows {
		history = history[len(history)-rows:]
	}

	tab := table.Table{
		Headers: []string{"Time", "Temperature", "Setpoint", "Power", "Duty", "Relay", "Faults"},
	}
	for _, s := range history {
		temperature := "n/a"
		if s.HasTemperature {
			temperature = fmt.Sprintf("%.2f", s.Temperature)
		}
		relay := "OFF"
		if s.RelayOn {
			relay = "ON"
		}
		tab.Rows = append(tab.Rows, []string{
			s.Time.Local().Format(time.DateTime),
			temperature,
			fmt.Sprintf("%.2f", s.Setpoint),
			fmt.Sprintf("%.1f", s.LastPower),
			fmt.Sprintf("%.1f%%", s.Duty*100),
			relay,
			fmt.Sprintf("%d", s.FaultCount),
		})
	}

	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
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

// historySeries extracts the temperature and duty (in %) series of the history.
// Snapshots without a temperature estimate are skipped in the temperature series.
func historySeries(history []telemetry.Snapshot) (temperatures []float64, duties []float64) {
	for _, s := range history {
		if s.HasTemperature {
			temperatures = append(temperatures, s.Temperature)
		}
		duties = append(duties, s.Duty*100)
	}
	return temperatures, duties
}

// formatTemperatureRange summarizes the lowest and highest recorded temperature
func formatTemperatureRange(temperatures []float64) string {
	return fmt.Sprintf("Temperature: min %.2f°C, max %.2f°C", util.Min(temperatures), util.Max(temperatures))
}

func init() {
	historyCmd.Flags().DurationVarP(&historySince, "since", "s", 1*time.Hour, "Only show entries recorded within this duration")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the recorded history of the configured heater")
	rootCmd.AddCommand(historyCmd)
}
