package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/heat2go/internal/api"
	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/markusressel/heat2go/internal/controller"
	"github.com/markusressel/heat2go/internal/heaters"
	"github.com/markusressel/heat2go/internal/persistence"
	"github.com/markusressel/heat2go/internal/sensors"
	"github.com/markusressel/heat2go/internal/statistics"
	"github.com/markusressel/heat2go/internal/telemetry"
	"github.com/markusressel/heat2go/internal/ui"
	"github.com/markusressel/heat2go/internal/util"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
)

const serverShutdownTimeout = 5 * time.Second

func RunDaemon() {
	if os.Geteuid() != 0 {
		ui.Warning("heat2go is not running as root, access to gpio, serial or sysfs devices might fail")
	}

	config := configuration.CurrentConfig
	sensor, relay := InitializeObjects(config)

	store := telemetry.NewStore()
	sinks, closeSinks := createSinks(config)
	defer closeSinks()

	heaterController, err := controller.NewHeaterController(config, sensor, relay, store, util.SystemClock)
	if err != nil {
		ui.Fatal("Unable to create control loop: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			statistics.RegisterAll(prometheus.DefaultRegisterer, store)

			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			addServer(&g, "statistics", api.CreateMetricsServer(), fmt.Sprintf(":%d", port))
		}
	}
	{
		if config.Api.Enabled {
			// === REST Api
			rest := api.CreateRestService(store, prometheus.DefaultRegisterer)
			addServer(&g, "api", rest, fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port))
		}
	}
	{
		// === telemetry
		reporter := telemetry.NewReporter(store, config.Telemetry.Interval, sinks...)
		g.Add(func() error {
			return reporter.Run(ctx)
		}, func(err error) {
			cancel()
		})
	}
	{
		// === control loop
		g.Add(func() error {
			err := heaterController.Run(ctx)
			ui.Info("Control loop %s stopped.", config.ID)
			if err != nil {
				ui.Error("Error stopping control loop %s: %v", config.ID, err)
			}
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		closeSinks()
		ui.FatalWithoutStacktrace("%v", err)
	} else {
		ui.Info("Done.")
	}
}

// addServer runs the given webserver as an actor of the group
func addServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		err := server.Start(addr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if err != nil {
			ui.Error("Cannot start %s server (%v)", name, err)
		}
		return err
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		}
	})
}

// InitializeObjects creates the configured sensor and relay.
// Any failure is fatal.
func InitializeObjects(config configuration.Configuration) (sensors.Sensor, heaters.Relay) {
	sensor, err := sensors.NewSensor(config.Sensor)
	if err != nil {
		ui.Fatal("Unable to process sensor configuration: %s: %v", config.Sensor.ID, err)
	}

	relay, err := heaters.NewRelay(config.Relay)
	if err != nil {
		ui.Fatal("Unable to process relay configuration: %s: %v", config.Relay.ID, err)
	}

	// start from a known state
	if err := relay.Set(false); err != nil {
		ui.Fatal("Unable to switch off relay %s: %v", relay.GetId(), err)
	}

	return sensor, relay
}

// createSinks creates all configured telemetry sinks.
// The returned function releases them and may be called multiple times.
func createSinks(config configuration.Configuration) ([]telemetry.Sink, func()) {
	var sinks []telemetry.Sink
	var closers []func() error

	if config.Telemetry.Print {
		sinks = append(sinks, telemetry.Printer{})
	}

	if config.Telemetry.Mqtt.Enabled {
		publisher, err := telemetry.NewMqttPublisher(config.Telemetry.Mqtt)
		if err != nil {
			ui.Warning("MQTT telemetry disabled: %v", err)
		} else {
			sinks = append(sinks, publisher)
			closers = append(closers, publisher.Close)
		}
	}

	if config.History.Enabled {
		pers := persistence.NewPersistence(config.DbPath)
		if err := pers.Init(); err != nil {
			ui.Fatal("Unable to initialize database %s: %v", config.DbPath, err)
		}
		sinks = append(sinks, persistence.NewHistoryRecorder(pers, config.History.MaxAge))
	}

	closed := false
	return sinks, func() {
		if closed {
			return
		}
		closed = true
		for _, closer := range closers {
			_ = closer()
		}
	}
}
