package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/markusressel/heat2go/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createService() (*telemetry.Store, http.Handler) {
	store := telemetry.NewStore()
	store.Put(telemetry.Snapshot{
		Id:             "heater",
		Time:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Temperature:    65,
		HasTemperature: true,
		Duty:           0.5,
	})
	return store, CreateRestService(store, prometheus.NewRegistry())
}

func request(handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIsAlive(t *testing.T) {
	// GIVEN
	_, service := createService()

	// WHEN
	rec := request(service, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetLoops(t *testing.T) {
	// GIVEN
	_, service := createService()

	// WHEN
	rec := request(service, "/loop/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result []telemetry.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "heater", result[0].Id)
	assert.Equal(t, 65.0, result[0].Temperature)
}

func TestGetLoop(t *testing.T) {
	// GIVEN
	_, service := createService()

	// WHEN
	rec := request(service, "/loop/heater")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result telemetry.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 0.5, result.Duty)
}

func TestGetLoop_NotFound(t *testing.T) {
	// GIVEN
	_, service := createService()

	// WHEN
	rec := request(service, "/loop/missing/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Contains(t, result.Message, "missing")
}

func TestCreateRestService_Twice(t *testing.T) {
	// GIVEN
	store := telemetry.NewStore()

	// WHEN
	first := CreateRestService(store, prometheus.NewRegistry())
	second := CreateRestService(store, prometheus.NewRegistry())

	// THEN
	assert.NotNil(t, first)
	assert.NotNil(t, second)
}

func TestCreateMetricsServer(t *testing.T) {
	// GIVEN
	server := CreateMetricsServer()

	// WHEN
	rec := request(server, "/metrics")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
