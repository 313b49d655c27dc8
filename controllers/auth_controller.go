// File: /controllers/auth_controller.go
package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"friendloop-api/models"
	"friendloop-api/repositories"
	"friendloop-api/services"
	"friendloop-api/utils"
)

type AuthController struct {
	users        *repositories.UserRepository
	tokens       *services.TokenService
	emailService *services.EmailService
}

func NewAuthController(users *repositories.UserRepository, tokens *services.TokenService, emailService *services.EmailService) *AuthController {
	return &AuthController{
		users:        users,
		tokens:       tokens,
		emailService: emailService,
	}
}

type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check uniqueness before creating, like the unique indexes will anyway
	if _, err := ac.users.FindByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email or username already exists"})
		return
	}
	if _, err := ac.users.FindByUsername(req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email or username already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:       uuid.New().String(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	user.Normalize()

	if err := ac.users.Create(&user); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	token, err := ac.tokens.Sign(&user)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	go func() {
		if err := ac.emailService.SendWelcomeEmail(user.Email, user.Username); err != nil {
			fmt.Printf("Failed to send welcome email: %v\n", err)
		}
	}()

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.users.FindByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := ac.tokens.Sign(user)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: *user})
}
