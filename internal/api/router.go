package api

import (
	"parking_tracker/internal/api/handler"
	"parking_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(ps *service.ParkingService, ns *service.NotificationService, wsManager *handler.WebSocketManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if wsManager != nil {
		wsHandler := handler.NewWebSocketHandler(wsManager)
		r.GET("/ws", wsHandler.HandleWebSocket)
	}

	v1 := r.Group("/api/v1")
	{
		spotH := handler.NewParkingSpotHandler(ps)
		v1.GET("/floors", spotH.GetFloors)
		v1.GET("/floors/:floor/spots", spotH.GetSpotsByFloor)

		spotRoutes := v1.Group("/spots")
		{
			spotRoutes.GET("", spotH.GetAllSpots)
			spotRoutes.GET("/:spot_id", spotH.GetSpotByID)
			spotRoutes.POST("/:spot_id/occupy", spotH.OccupySpot)
			spotRoutes.POST("/:spot_id/vacate", spotH.VacateSpot)
			spotRoutes.POST("/:spot_id/reserve", spotH.ReserveSpot)
			spotRoutes.POST("/:spot_id/problematic", spotH.MarkProblematic)
			spotRoutes.POST("/:spot_id/release", spotH.ReleaseSpot)
		}

		historyH := handler.NewHistoryHandler(ps)
		v1.GET("/history", historyH.GetHistory)
		v1.GET("/statistics", historyH.GetStatistics)

		notificationH := handler.NewNotificationHandler(ns)
		v1.GET("/notifications", notificationH.GetNotifications)
		v1.DELETE("/notifications", notificationH.ClearNotifications)
	}
	return r
}
