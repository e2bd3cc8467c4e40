package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"roadwatch-service/models"
)

func TestReceiveSensorDataMissingFields(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/sensor-data", map[string]any{
		"gyroscope": map[string]any{"x": 0.1, "y": 0.2, "z": 0.3},
		"location":  map[string]any{"lat": 40.7128, "lng": -74.006},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required field: vehicle_id")

	w = doJSON(t, router, http.MethodPost, "/api/sensor-data", map[string]any{
		"vehicle_id": 5,
		"location":   map[string]any{"lat": 40.7128, "lng": -74.006},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required field: gyroscope")

	w = doJSON(t, router, http.MethodPost, "/api/sensor-data", map[string]any{
		"vehicle_id": 5,
		"gyroscope":  map[string]any{"x": 0.1, "y": 0.2, "z": 0.3},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required field: location")
}

func TestReceiveSensorDataVehicleNotFound(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM vehicles WHERE id = ?`)).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	w := doJSON(t, router, http.MethodPost, "/api/sensor-data", map[string]any{
		"vehicle_id": 42,
		"gyroscope":  map[string]any{"x": 0.1, "y": 0.2, "z": 0.3},
		"location":   map[string]any{"lat": 40.7128, "lng": -74.006},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Vehicle not found")
	// No sensor or hazard rows written for a missing vehicle.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiveSensorDataTriggersHazard(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM vehicles WHERE id = ?`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sensor_data`)).
		WithArgs(5, 0.0, 0.0, 2.0, "POINT(40.7128 -74.006)", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET location`)).
		WithArgs("POINT(40.7128 -74.006)", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO hazards`)).
		WithArgs("pothole", "medium", "POINT(40.7128 -74.006)", "vehicle_5",
			sqlmock.AnyArg(), "detected", "Automatically detected by vehicle sensors", nil).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	w := doJSON(t, router, http.MethodPost, "/api/sensor-data", map[string]any{
		"vehicle_id": 5,
		"gyroscope":  map[string]any{"z": 2.0},
		"location":   map[string]any{"lat": 40.7128, "lng": -74.006},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SensorIngestResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 12, resp.SensorDataID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiveSensorDataQuietSample(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM vehicles WHERE id = ?`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sensor_data`)).
		WithArgs(5, 0.1, 0.2, 0.3, "POINT(40.7128 -74.006)", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vehicles SET location`)).
		WithArgs("POINT(40.7128 -74.006)", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(t, router, http.MethodPost, "/api/sensor-data", map[string]any{
		"vehicle_id": 5,
		"gyroscope":  map[string]any{"x": 0.1, "y": 0.2, "z": 0.3},
		"location":   map[string]any{"lat": 40.7128, "lng": -74.006},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	// No hazard insert expected; a stray write would fail ExpectationsWereMet.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVehicleSensorDataNotFound(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM vehicles WHERE id = ?`)).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(t, router, http.MethodGet, "/api/sensor-data/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Vehicle not found")
}

func TestGetVehicleSensorData(t *testing.T) {
	router, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM vehicles WHERE id = ?`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM sensor_data`)).
		WithArgs(5, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "gyroscope_x", "gyroscope_y", "gyroscope_z", "lat", "lng", "timestamp", "processed"}).
			AddRow(12, 5, 0.0, 0.0, 2.0, 40.7128, -74.006, "2023-09-18 11:00:00", false))

	w := doJSON(t, router, http.MethodGet, "/api/sensor-data/5", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var readings []models.SensorData
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &readings))
	assert.Len(t, readings, 1)
	assert.Equal(t, 5, readings[0].VehicleID)
	assert.False(t, readings[0].Processed)
}
