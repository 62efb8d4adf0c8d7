package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/heat2go/internal/telemetry"
	"github.com/qdm12/reprint"
)

func registerLoopEndpoints(rest *echo.Echo, store *telemetry.Store) {
	group := rest.Group("/loop")

	group.GET("/", getLoops(store))
	group.GET("/:"+urlParamId+"/", getLoop(store))
}

// returns the latest snapshot of all control loops
func getLoops(store *telemetry.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := reprint.This(store.All())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}

func getLoop(store *telemetry.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(urlParamId)
		data, exists := store.Get(id)
		if !exists {
			return returnNotFound(c, id)
		}
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}
