package handler

import (
	"errors"
	"net/http"
	"parking_tracker/internal/domain"
	"parking_tracker/internal/repository"
	"parking_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, service.ErrMissingLicensePlate),
		errors.Is(err, service.ErrVehicleTypeMismatch),
		errors.Is(err, service.ErrInvalidFilter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeTransition renders the outcome of a spot operation. A no-op still
// carries the unchanged spot when there is one.
func writeTransition(c *gin.Context, result domain.TransitionResult, err error) {
	if err != nil {
		body := gin.H{"outcome": result.Outcome, "error": err.Error()}
		if result.Spot != nil {
			body["spot"] = result.Spot
		}
		c.JSON(statusFor(err), body)
		return
	}
	c.JSON(http.StatusOK, result)
}
