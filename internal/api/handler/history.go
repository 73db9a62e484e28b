package handler

import (
	"net/http"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	parkingService *service.ParkingService
}

func NewHistoryHandler(ps *service.ParkingService) *HistoryHandler {
	return &HistoryHandler{parkingService: ps}
}

// GET /history?date=YYYY-MM-DD&vehicle_type=car
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	var filter domain.HistoryFilterDTO
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return
	}

	records, err := h.parkingService.History(c.Request.Context(), filter)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GET /statistics
func (h *HistoryHandler) GetStatistics(c *gin.Context) {
	stats, err := h.parkingService.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
