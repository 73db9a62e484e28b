package handler

import (
	"net/http"
	"parking_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(ns *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	events, err := h.notificationService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

// DELETE /notifications
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	if err := h.notificationService.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear notifications", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
