package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	source SnapshotSource

	setpoint     *prometheus.Desc
	controlError *prometheus.Desc
	power        *prometheus.Desc
	duty         *prometheus.Desc
}

func NewControllerCollector(source SnapshotSource) *ControllerCollector {
	return &ControllerCollector{
		source: source,
		setpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "setpoint"),
			"Target temperature in °C",
			[]string{"id"}, nil,
		),
		controlError: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "error"),
			"Control error (setpoint - temperature) of the last controller execution",
			[]string{"id"}, nil,
		),
		power: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "power"),
			"Clamped power command of the last controller execution in W",
			[]string{"id"}, nil,
		),
		duty: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "duty"),
			"Published PWM duty cycle (0..1)",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.setpoint
	ch <- collector.controlError
	ch <- collector.power
	ch <- collector.duty
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range collector.source.All() {
		ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, s.Setpoint, s.Id)
		ch <- prometheus.MustNewConstMetric(collector.controlError, prometheus.GaugeValue, s.LastError, s.Id)
		ch <- prometheus.MustNewConstMetric(collector.power, prometheus.GaugeValue, s.LastPower, s.Id)
		ch <- prometheus.MustNewConstMetric(collector.duty, prometheus.GaugeValue, s.Duty, s.Id)
	}
}
