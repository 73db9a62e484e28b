package handler

import (
	"errors"
	"net/http"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/repository"
	"parking_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ParkingSpotHandler struct {
	parkingService *service.ParkingService
}

func NewParkingSpotHandler(ps *service.ParkingService) *ParkingSpotHandler {
	return &ParkingSpotHandler{parkingService: ps}
}

// GET /floors
func (h *ParkingSpotHandler) GetFloors(c *gin.Context) {
	summaries, err := h.parkingService.FloorSummaries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarise floors", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"floors": h.parkingService.Floors(), "summaries": summaries})
}

// GET /floors/:floor/spots
func (h *ParkingSpotHandler) GetSpotsByFloor(c *gin.Context) {
	spots, err := h.parkingService.ListByFloor(c.Request.Context(), c.Param("floor"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list spots", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spots)
}

// GET /spots
func (h *ParkingSpotHandler) GetAllSpots(c *gin.Context) {
	spots, err := h.parkingService.ListSpots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list spots", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spots)
}

// GET /spots/:spot_id
func (h *ParkingSpotHandler) GetSpotByID(c *gin.Context) {
	spot, err := h.parkingService.GetSpot(c.Request.Context(), c.Param("spot_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get spot", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spot)
}

// POST /spots/:spot_id/occupy
func (h *ParkingSpotHandler) OccupySpot(c *gin.Context) {
	var dto domain.OccupySpotDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	result, err := h.parkingService.OccupySpot(c.Request.Context(), c.Param("spot_id"), dto.LicensePlate, dto.VehicleType)
	writeTransition(c, result, err)
}

// POST /spots/:spot_id/vacate
func (h *ParkingSpotHandler) VacateSpot(c *gin.Context) {
	result, err := h.parkingService.VacateSpot(c.Request.Context(), c.Param("spot_id"))
	writeTransition(c, result, err)
}

// POST /spots/:spot_id/reserve
func (h *ParkingSpotHandler) ReserveSpot(c *gin.Context) {
	result, err := h.parkingService.ReserveSpot(c.Request.Context(), c.Param("spot_id"))
	writeTransition(c, result, err)
}

// POST /spots/:spot_id/problematic
func (h *ParkingSpotHandler) MarkProblematic(c *gin.Context) {
	result, err := h.parkingService.MarkProblematic(c.Request.Context(), c.Param("spot_id"))
	writeTransition(c, result, err)
}

// POST /spots/:spot_id/release
func (h *ParkingSpotHandler) ReleaseSpot(c *gin.Context) {
	result, err := h.parkingService.ReleaseSpot(c.Request.Context(), c.Param("spot_id"))
	writeTransition(c, result, err)
}
