package handlers

import (
	"errors"
	"net/http"

	"roadwatch-service/database"
	"roadwatch-service/detection"
	"roadwatch-service/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

type SensorHandler struct {
	sensors *database.SensorService
}

func NewSensorHandler(sensors *database.SensorService) *SensorHandler {
	return &SensorHandler{sensors: sensors}
}

// ReceiveSensorData ingests one telemetry sample: it persists the reading,
// refreshes the vehicle position, and runs the pothole heuristic over the
// gyroscope vector.
func (h *SensorHandler) ReceiveSensorData(c *gin.Context) {
	args := &models.SensorDataRequest{}
	if err := c.ShouldBindJSON(args); err != nil {
		log.Errorf("Failed to get the argument in sensor data call: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if args.VehicleID == nil {
		missingField(c, "vehicle_id")
		return
	}
	if args.Gyroscope == nil {
		missingField(c, "gyroscope")
		return
	}
	if args.Location == nil {
		missingField(c, "location")
		return
	}
	if !args.Location.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location format"})
		return
	}

	dbTime := ""
	if args.Timestamp != nil {
		var err error
		dbTime, err = database.ParseTimestamp(*args.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp format"})
			return
		}
	}

	// Missing axes read as 0.
	x, y, z := 0.0, 0.0, 0.0
	if args.Gyroscope.X != nil {
		x = *args.Gyroscope.X
	}
	if args.Gyroscope.Y != nil {
		y = *args.Gyroscope.Y
	}
	if args.Gyroscope.Z != nil {
		z = *args.Gyroscope.Z
	}

	sensorID, err := h.sensors.Ingest(c.Request.Context(), &database.IngestArgs{
		VehicleID:      *args.VehicleID,
		GyroX:          x,
		GyroY:          y,
		GyroZ:          z,
		Lat:            *args.Location.Lat,
		Lng:            *args.Location.Lng,
		Timestamp:      dbTime,
		HazardDetected: detection.DetectPothole(x, y, z),
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Errorf("Error ingesting sensor data for vehicle %d: %v", *args.VehicleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save sensor data"})
		return
	}

	c.JSON(http.StatusOK, models.SensorIngestResponse{
		Status:       "success",
		Message:      "Sensor data received and processed",
		SensorDataID: sensorID,
	})
}

func (h *SensorHandler) GetVehicleSensorData(c *gin.Context) {
	vehicleID, ok := pathID(c, "vehicle_id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	readings, err := h.sensors.ListForVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Errorf("Error listing sensor data for vehicle %d: %v", vehicleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sensor data"})
		return
	}
	c.JSON(http.StatusOK, readings)
}
