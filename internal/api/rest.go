package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/heat2go/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	EndpointPathAlive = "/alive/"

	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// CreateRestService creates the REST api for the given telemetry store.
// Request metrics are registered with the given registerer.
func CreateRestService(store *telemetry.Store, registerer prometheus.Registerer) *echo.Echo {
	echoRest := CreateWebserver()
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "heat2go",
		Subsystem:  "api",
		Registerer: registerer,
	}))

	echoRest.GET(EndpointPathAlive, isAlive)

	registerLoopEndpoints(echoRest, store)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}
