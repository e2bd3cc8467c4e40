package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"roadwatch-service/database"
	"roadwatch-service/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	geojson "github.com/paulmach/go.geojson"
)

// defaultNearbyRadiusKm applies when the nearby query omits ?radius.
const defaultNearbyRadiusKm = 1.0

type HazardsHandler struct {
	hazards *database.HazardsService
}

func NewHazardsHandler(hazards *database.HazardsService) *HazardsHandler {
	return &HazardsHandler{hazards: hazards}
}

func (h *HazardsHandler) GetHazards(c *gin.Context) {
	hazards, err := h.hazards.List(c.Request.Context())
	if err != nil {
		log.Errorf("Error listing hazards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list hazards"})
		return
	}
	c.JSON(http.StatusOK, hazards)
}

func (h *HazardsHandler) GetHazard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
		return
	}

	hazard, err := h.hazards.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
			return
		}
		log.Errorf("Error getting hazard %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get hazard"})
		return
	}
	c.JSON(http.StatusOK, hazard)
}

func (h *HazardsHandler) CreateHazard(c *gin.Context) {
	args := &models.CreateHazardRequest{}
	if err := c.ShouldBindJSON(args); err != nil {
		log.Errorf("Failed to get the argument in create hazard call: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if args.Type == nil {
		missingField(c, "type")
		return
	}
	if args.Severity == nil {
		missingField(c, "severity")
		return
	}
	if args.Location == nil {
		missingField(c, "location")
		return
	}
	if args.ReportedBy == nil {
		missingField(c, "reported_by")
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

	hazard, err := h.hazards.Create(c.Request.Context(), args, dbTime)
	if err != nil {
		log.Errorf("Error creating hazard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hazard"})
		return
	}
	c.JSON(http.StatusCreated, hazard)
}

func (h *HazardsHandler) UpdateHazard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
		return
	}

	args := &models.UpdateHazardRequest{}
	if err := c.ShouldBindJSON(args); err != nil {
		log.Errorf("Failed to get the argument in update hazard call: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if args.Location != nil && !args.Location.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location format"})
		return
	}

	hazard, err := h.hazards.Update(c.Request.Context(), id, args)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
			return
		}
		log.Errorf("Error updating hazard %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hazard"})
		return
	}
	c.JSON(http.StatusOK, hazard)
}

func (h *HazardsHandler) DeleteHazard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
		return
	}

	if err := h.hazards.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hazard not found"})
			return
		}
		log.Errorf("Error deleting hazard %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete hazard"})
		return
	}
	c.JSON(http.StatusOK, models.DeleteResponse{Message: "Hazard deleted successfully"})
}

func (h *HazardsHandler) GetNearbyHazards(c *gin.Context) {
	latStr, hasLat := c.GetQuery("lat")
	lngStr, hasLng := c.GetQuery("lng")
	if !hasLat || !hasLng {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location parameters"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location parameters"})
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location parameters"})
		return
	}

	radius := defaultNearbyRadiusKm
	if radiusStr, hasRadius := c.GetQuery("radius"); hasRadius {
		radius, err = strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location parameters"})
			return
		}
	}

	hazards, err := h.hazards.Nearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		log.Errorf("Error getting nearby hazards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get nearby hazards"})
		return
	}
	c.JSON(http.StatusOK, hazards)
}

// GetHazardsGeoJSON exports every hazard as a GeoJSON FeatureCollection for
// map frontends.
func (h *HazardsHandler) GetHazardsGeoJSON(c *gin.Context) {
	hazards, err := h.hazards.List(c.Request.Context())
	if err != nil {
		log.Errorf("Error listing hazards for geojson export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list hazards"})
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, hz := range hazards {
		if !hz.Location.Valid() {
			continue
		}
		f := geojson.NewPointFeature([]float64{*hz.Location.Lng, *hz.Location.Lat})
		f.SetProperty("id", hz.ID)
		f.SetProperty("type", hz.Type)
		f.SetProperty("severity", hz.Severity)
		f.SetProperty("status", hz.Status)
		f.SetProperty("reported_by", hz.ReportedBy)
		f.SetProperty("timestamp", hz.Timestamp)
		if hz.Description != nil {
			f.SetProperty("description", *hz.Description)
		}
		if hz.ImageURL != nil {
			f.SetProperty("image_url", *hz.ImageURL)
		}
		fc.AddFeature(f)
	}
	c.JSON(http.StatusOK, fc)
}
