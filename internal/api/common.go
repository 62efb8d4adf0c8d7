package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const EndpointPathMetrics = "/metrics/"

// CreateWebserver creates a bare webserver, without any endpoints
func CreateWebserver() *echo.Echo {
	webserver := echo.New()
	webserver.HideBanner = true
	webserver.HidePort = true

	// Root level middleware
	webserver.Pre(middleware.AddTrailingSlash())

	webserver.Use(middleware.Secure())
	webserver.Use(middleware.Recover())

	return webserver
}

// CreateMetricsServer creates a webserver exposing all registered prometheus collectors
func CreateMetricsServer() *echo.Echo {
	webserver := CreateWebserver()
	webserver.GET(EndpointPathMetrics, echoprometheus.NewHandler())
	return webserver
}
