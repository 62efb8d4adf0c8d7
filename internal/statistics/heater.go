package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const heaterSubsystem = "heater"

type HeaterCollector struct {
	source SnapshotSource
	relay  *prometheus.Desc
}

func NewHeaterCollector(source SnapshotSource) *HeaterCollector {
	return &HeaterCollector{
		source: source,
		relay: prometheus.NewDesc(prometheus.BuildFQName(namespace, heaterSubsystem, "relay_on"),
			"1 if the heater relay is switched on",
			[]string{"id"}, nil,
		),
	}
}

func (collector *HeaterCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.relay
}

// Collect implements required collect function for all prometheus collectors
func (collector *HeaterCollector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range collector.source.All() {
		ch <- prometheus.MustNewConstMetric(collector.relay, prometheus.GaugeValue, boolToFloat(s.RelayOn), s.Id)
	}
}
