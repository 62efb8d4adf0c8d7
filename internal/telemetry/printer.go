package telemetry

import (
	"fmt"
	"time"

	"github.com/markusressel/heat2go/internal/ui"
)

// Printer logs a human readable status line for each snapshot
type Printer struct{}

func (p Printer) Name() string {
	return "printer"
}

func (p Printer) Report(snapshot Snapshot) error {
	ui.Info("%s", FormatLine(snapshot))
	return nil
}

// FormatLine renders a snapshot as a single status line
func FormatLine(s Snapshot) string {
	temperature := "n/a"
	if s.HasTemperature {
		temperature = fmt.Sprintf("%.2f°C", s.Temperature)
	}
	relay := "OFF"
	if s.RelayOn {
		relay = "ON"
	}

	line := fmt.Sprintf(
		"%s [%s] T=%s (setpoint %.2f°C) V=%.4fV e=%.3f u=%.1fW duty=%.1f%% relay=%s",
		s.Id, s.Elapsed.Truncate(10*time.Millisecond), temperature, s.Setpoint, s.LastVoltage,
		s.LastError, s.LastPower, s.Duty*100, relay,
	)
	if s.SensorFault {
		line += fmt.Sprintf(" SENSOR FAULT (%d)", s.FaultCount)
	}
	if s.ReadErrorCount > 0 {
		line += fmt.Sprintf(" read errors=%d", s.ReadErrorCount)
	}
	return line
}
