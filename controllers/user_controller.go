// File: /controllers/user_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"friendloop-api/realtime"
	"friendloop-api/repositories"
	"friendloop-api/services"
	"friendloop-api/utils"
)

type UserController struct {
	users         *repositories.UserRepository
	relationships *services.RelationshipService
	hub           *realtime.Hub
}

func NewUserController(users *repositories.UserRepository, relationships *services.RelationshipService, hub *realtime.Hub) *UserController {
	return &UserController{
		users:         users,
		relationships: relationships,
		hub:           hub,
	}
}

// GetUsers lists every user.
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.users.FindAll()
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetMe returns the caller's own record with all five relationship sets.
func (uc *UserController) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := uc.users.FindByID(userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SearchUsers matches username or email by substring, excluding the caller.
func (uc *UserController) SearchUsers(c *gin.Context) {
	userID := c.GetString("user_id")

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, []interface{}{})
		return
	}

	users, err := uc.users.Search(query, userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (uc *UserController) FollowUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetUserID := c.Param("id")

	if err := uc.relationships.Follow(userID, targetUserID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	// Best-effort push; delivery never affects the response.
	uc.hub.Notify(targetUserID, realtime.EventFollow,
		"User "+c.GetString("username")+" followed you")

	c.JSON(http.StatusOK, gin.H{"message": "User followed successfully"})
}

func (uc *UserController) UnfollowUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetUserID := c.Param("id")

	if err := uc.relationships.Unfollow(userID, targetUserID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
}
