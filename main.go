package main

import (
	"fmt"
	"strconv"

	"roadwatch-service/config"
	"roadwatch-service/database"
	"roadwatch-service/handlers"
	"roadwatch-service/utils"
	"roadwatch-service/version"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const (
	EndPointHealth      = "/health"
	EndPointVehicles    = "/vehicles"
	EndPointVehicleByID = "/vehicles/:id"
	EndPointHazards     = "/hazards"
	EndPointHazardByID  = "/hazards/:id"
	EndPointNearby      = "/hazards/nearby"
	EndPointGeoJSON     = "/hazards/geojson"
	EndPointSensorData  = "/sensor-data"
	EndPointSensorByVeh = "/sensor-data/:vehicle_id"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Info("Starting the roadwatch service...")

	// Connect to database
	db, err := utils.DBConnect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize database schema
	if err := database.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	// Initialize services
	vehiclesService := database.NewVehiclesService(db)
	hazardsService := database.NewHazardsService(db)
	sensorService := database.NewSensorService(db)

	// Initialize handlers
	vehiclesHandler := handlers.NewVehiclesHandler(vehiclesService)
	hazardsHandler := handlers.NewHazardsHandler(hazardsService)
	sensorHandler := handlers.NewSensorHandler(sensorService)

	// Setup router
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, version.Get("roadwatch-service"))
	})

	// API route group
	api := router.Group("/api")
	{
		api.GET(EndPointHealth, handlers.HealthCheck)

		api.GET(EndPointVehicles, vehiclesHandler.GetVehicles)
		api.GET(EndPointVehicleByID, vehiclesHandler.GetVehicle)
		api.POST(EndPointVehicles, vehiclesHandler.CreateVehicle)
		api.PUT(EndPointVehicleByID, vehiclesHandler.UpdateVehicle)
		api.DELETE(EndPointVehicleByID, vehiclesHandler.DeleteVehicle)

		api.GET(EndPointHazards, hazardsHandler.GetHazards)
		api.GET(EndPointNearby, hazardsHandler.GetNearbyHazards)
		api.GET(EndPointGeoJSON, hazardsHandler.GetHazardsGeoJSON)
		api.GET(EndPointHazardByID, hazardsHandler.GetHazard)
		api.POST(EndPointHazards, hazardsHandler.CreateHazard)
		api.PUT(EndPointHazardByID, hazardsHandler.UpdateHazard)
		api.DELETE(EndPointHazardByID, hazardsHandler.DeleteHazard)

		api.POST(EndPointSensorData, sensorHandler.ReceiveSensorData)
		api.GET(EndPointSensorByVeh, sensorHandler.GetVehicleSensorData)
	}

	// Get server port from config
	serverPort, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("Invalid PORT configuration: %v", err)
	}

	// Start server
	log.Infof("Roadwatch service starting on port %d", serverPort)
	if err := router.Run(fmt.Sprintf(":%d", serverPort)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
