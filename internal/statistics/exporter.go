package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "heat2go"
)

// RegisterAll registers all collectors of the given telemetry store
func RegisterAll(registerer prometheus.Registerer, store SnapshotSource) {
	registerer.MustRegister(
		NewSensorCollector(store),
		NewControllerCollector(store),
		NewHeaterCollector(store),
	)
}
