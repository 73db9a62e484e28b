package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"parking_tracker/internal/api"
	"parking_tracker/internal/api/handler"
	"parking_tracker/internal/config"
	"parking_tracker/internal/repository/memory"
	"parking_tracker/internal/service"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	log.Printf("Configuration loaded: floors=%v, spots per floor=%d", cfg.Floors, cfg.SpotsPerFloor)

	// 2. Build the spot registry and the in-memory stores
	spots := service.GenerateSpots(cfg.Floors, cfg.SpotsPerFloor, cfg.BikeSpotEvery)
	spotRepo, err := memory.NewSpotRepository(spots)
	if err != nil {
		log.Fatalf("Could not build spot registry: %v", err)
	}
	historyRepo := memory.NewHistoryRepository()
	notificationRepo := memory.NewNotificationRepository()
	log.Printf("Spot registry initialised with %d spots", len(spots))

	idNode, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		log.Fatalf("Could not create history id generator: %v", err)
	}

	// 3. WebSocket manager
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	webSocketManager := handler.NewWebSocketManager()
	go webSocketManager.Start(ctx)

	// 4. Services
	notificationService := service.NewNotificationService(notificationRepo)
	notificationService.Subscribe(webSocketManager)
	fares := service.NewFareCalculator(cfg.CarHourlyRate, cfg.BikeHourlyRate)
	parkingService := service.NewParkingService(spotRepo, historyRepo, notificationService, fares,
		idNode, cfg.Floors, cfg.CurrencyPrefix)

	// 5. HTTP server
	router := api.SetupRouter(parkingService, notificationService, webSocketManager)
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shut down: %v", err)
	}
	log.Println("Server stopped.")
}
