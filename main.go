// File: /main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/gin-gonic/gin"

	"friendloop-api/config"
	"friendloop-api/database"
	"friendloop-api/middleware"
	"friendloop-api/queue"
	"friendloop-api/realtime"
	"friendloop-api/repositories"
	"friendloop-api/routes"
	"friendloop-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Shared services
	tokens := services.NewTokenService(cfg.JWTSecret, 7*24*time.Hour)
	emailService := services.NewEmailService(cfg)
	hub := realtime.NewHub()

	// Post ingestion queue
	queueLogger := watermill.NewStdLogger(false, false)

	publisher, err := queue.NewNATSPublisher(cfg.NATSURL, queueLogger)
	if err != nil {
		log.Fatal("Failed to connect queue publisher:", err)
	}
	defer publisher.Close()

	subscriber, err := queue.NewNATSSubscriber(cfg.NATSURL, queueLogger)
	if err != nil {
		log.Fatal("Failed to connect queue subscriber:", err)
	}
	defer subscriber.Close()

	postService := services.NewPostService(
		repositories.NewPostRepository(db),
		repositories.NewUserRepository(db),
	)
	worker := queue.NewWorker(subscriber, postService)

	go func() {
		if err := worker.Run(context.Background()); err != nil {
			log.Printf("Post worker stopped: %v", err)
		}
	}()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.FrontendURL))
	router.Use(middleware.SecurityHeaders())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, tokens, hub, publisher, emailService)

	// Start server
	log.Printf("Starting FriendLoop API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
