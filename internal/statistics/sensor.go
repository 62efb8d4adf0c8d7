package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	source SnapshotSource

	voltage     *prometheus.Desc
	temperature *prometheus.Desc
	fault       *prometheus.Desc
	faultCount  *prometheus.Desc
	readErrors  *prometheus.Desc
}

func NewSensorCollector(source SnapshotSource) *SensorCollector {
	return &SensorCollector{
		source: source,
		voltage: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "voltage"),
			"Last measured voltage of the PT100 divider",
			[]string{"id"}, nil,
		),
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "temperature"),
			"Filtered temperature estimate in °C",
			[]string{"id"}, nil,
		),
		fault: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "fault"),
			"1 if the last reading was a sensor fault",
			[]string{"id"}, nil,
		),
		faultCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "fault_count"),
			"Number of readings rejected as sensor fault",
			[]string{"id"}, nil,
		),
		readErrors: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "read_error_count"),
			"Number of failed sensor reads",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.voltage
	ch <- collector.temperature
	ch <- collector.fault
	ch <- collector.faultCount
	ch <- collector.readErrors
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range collector.source.All() {
		ch <- prometheus.MustNewConstMetric(collector.voltage, prometheus.GaugeValue, s.LastVoltage, s.Id)
		if s.HasTemperature {
			ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, s.Temperature, s.Id)
		}
		ch <- prometheus.MustNewConstMetric(collector.fault, prometheus.GaugeValue, boolToFloat(s.SensorFault), s.Id)
		ch <- prometheus.MustNewConstMetric(collector.faultCount, prometheus.CounterValue, float64(s.FaultCount), s.Id)
		ch <- prometheus.MustNewConstMetric(collector.readErrors, prometheus.CounterValue, float64(s.ReadErrorCount), s.Id)
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
