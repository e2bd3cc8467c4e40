package handlers

import (
	"errors"
	"net/http"

	"roadwatch-service/database"
	"roadwatch-service/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

type VehiclesHandler struct {
	vehicles *database.VehiclesService
}

func NewVehiclesHandler(vehicles *database.VehiclesService) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicles}
}

func (h *VehiclesHandler) GetVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.List(c.Request.Context())
	if err != nil {
		log.Errorf("Error listing vehicles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vehicles"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *VehiclesHandler) GetVehicle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	vehicle, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Errorf("Error getting vehicle %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get vehicle"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *VehiclesHandler) CreateVehicle(c *gin.Context) {
	args := &models.CreateVehicleRequest{}
	if err := c.ShouldBindJSON(args); err != nil {
		log.Errorf("Failed to get the argument in create vehicle call: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if args.Name == nil {
		missingField(c, "name")
		return
	}
	if args.Type == nil {
		missingField(c, "type")
		return
	}
	if args.Location != nil && !args.Location.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location format"})
		return
	}

	vehicle, err := h.vehicles.Create(c.Request.Context(), args)
	if err != nil {
		log.Errorf("Error creating vehicle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehiclesHandler) UpdateVehicle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	args := &models.UpdateVehicleRequest{}
	if err := c.ShouldBindJSON(args); err != nil {
		log.Errorf("Failed to get the argument in update vehicle call: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if args.Location != nil && !args.Location.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location format"})
		return
	}

	vehicle, err := h.vehicles.Update(c.Request.Context(), id, args)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Errorf("Error updating vehicle %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *VehiclesHandler) DeleteVehicle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	if err := h.vehicles.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		log.Errorf("Error deleting vehicle %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	c.JSON(http.StatusOK, models.DeleteResponse{Message: "Vehicle deleted successfully"})
}
