// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"friendloop-api/config"
	"friendloop-api/controllers"
	"friendloop-api/middleware"
	"friendloop-api/queue"
	"friendloop-api/realtime"
	"friendloop-api/repositories"
	"friendloop-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, tokens *services.TokenService, hub *realtime.Hub, publisher *queue.Publisher, emailService *services.EmailService) {
	// Stores and services
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	relationshipService := services.NewRelationshipService(userRepo)
	postService := services.NewPostService(postRepo, userRepo)

	// Controllers
	authController := controllers.NewAuthController(userRepo, tokens, emailService)
	userController := controllers.NewUserController(userRepo, relationshipService, hub)
	friendController := controllers.NewFriendController(userRepo, relationshipService, hub)
	postController := controllers.NewPostController(postService, publisher)
	notificationController := controllers.NewNotificationController(hub, tokens)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Notification websocket endpoint (authenticates during the handshake)
	r.GET("/ws", notificationController.ServeWS)

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public, rate limited)
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(5, 5))
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("", userController.GetUsers)
			users.GET("/me", userController.GetMe)
			users.GET("/search", userController.SearchUsers)
			users.POST("/follow/:id", userController.FollowUser)
			users.DELETE("/follow/:id", userController.UnfollowUser)

			users.POST("/friend-request/:id", friendController.SendFriendRequest)
			users.POST("/friend-request/:id/accept", friendController.AcceptFriendRequest)
			users.POST("/friend-request/:id/reject", friendController.RejectFriendRequest)
			users.DELETE("/friend-request/:id", friendController.CancelFriendRequest)
			users.GET("/friends", friendController.GetFriends)
			users.DELETE("/friends/:id", friendController.RemoveFriend)
		}

		// Post routes
		posts := protected.Group("/posts")
		{
			posts.POST("", middleware.RateLimit(3, 3), postController.CreatePost)
			posts.GET("", postController.GetPosts)
			posts.GET("/timeline", postController.GetTimeline)
		}
	}
}
