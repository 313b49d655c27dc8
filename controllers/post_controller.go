// File: /controllers/post_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"friendloop-api/queue"
	"friendloop-api/services"
	"friendloop-api/utils"
)

type PostController struct {
	posts     *services.PostService
	publisher *queue.Publisher
}

func NewPostController(posts *services.PostService, publisher *queue.Publisher) *PostController {
	return &PostController{
		posts:     posts,
		publisher: publisher,
	}
}

type CreatePostRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// CreatePost enqueues the post for asynchronous creation and returns before
// the post exists.
func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := queue.PostJob{
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := pc.publisher.EnqueuePost(job); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to queue post creation"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Post creation queued successfully"})
}

// GetTimeline returns the caller's timeline: posts by friends and the caller
// themselves, newest first.
func (pc *PostController) GetTimeline(c *gin.Context) {
	userID := c.GetString("user_id")

	posts, err := pc.posts.Timeline(userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPosts returns every post, newest first.
func (pc *PostController) GetPosts(c *gin.Context) {
	posts, err := pc.posts.All()
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}
