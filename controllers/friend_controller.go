// File: /controllers/friend_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"friendloop-api/models"
	"friendloop-api/realtime"
	"friendloop-api/repositories"
	"friendloop-api/services"
	"friendloop-api/utils"
)

type FriendController struct {
	users         *repositories.UserRepository
	relationships *services.RelationshipService
	hub           *realtime.Hub
}

func NewFriendController(users *repositories.UserRepository, relationships *services.RelationshipService, hub *realtime.Hub) *FriendController {
	return &FriendController{
		users:         users,
		relationships: relationships,
		hub:           hub,
	}
}

func (fc *FriendController) SendFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	targetUserID := c.Param("id")

	if err := fc.relationships.SendFriendRequest(userID, targetUserID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	fc.hub.Notify(targetUserID, realtime.EventFriendRequest,
		c.GetString("username")+" sent you a friend request")

	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully"})
}

func (fc *FriendController) AcceptFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	senderUserID := c.Param("id")

	if err := fc.relationships.AcceptFriendRequest(userID, senderUserID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	fc.hub.Notify(senderUserID, realtime.EventFriendAccept,
		c.GetString("username")+" accepted your friend request")

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted successfully"})
}

func (fc *FriendController) RejectFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	senderUserID := c.Param("id")

	if err := fc.relationships.RejectFriendRequest(userID, senderUserID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected successfully"})
}

func (fc *FriendController) CancelFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	targetUserID := c.Param("id")

	if err := fc.relationships.CancelFriendRequest(userID, targetUserID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request cancelled successfully"})
}

// GetFriends resolves the caller's friend ids to profiles.
func (fc *FriendController) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	friendIDs, err := fc.relationships.Friends(userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	friends, err := fc.users.FindByIDs(friendIDs)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	summaries := make([]models.UserSummary, 0, len(friends))
	for i := range friends {
		summaries = append(summaries, friends[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{"friends": summaries})
}

func (fc *FriendController) RemoveFriend(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID := c.Param("id")

	if err := fc.relationships.RemoveFriend(userID, friendID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
}
