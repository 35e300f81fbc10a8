package api

import (
	"net/http" // HTTP status codes

	"auction_house/internal/auction" // Account service
	"auction_house/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest carries a registration form submission
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`     // Desired username
	Email        string `json:"email" binding:"required,email"`  // Email address
	Password     string `json:"password" binding:"required"`     // Password
	Confirmation string `json:"confirmation" binding:"required"` // Password confirmation
}

// LoginRequest carries a login form submission
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username
	Password string `json:"password" binding:"required"` // Password
}

// AuthResponse carries the session token issued on login
type AuthResponse struct {
	Token string `json:"token"` // Session token
}

// RegisterHandler creates a new user account
func RegisterHandler(accounts *auction.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := accounts.Register(req.Username, req.Email, req.Password, req.Confirmation)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // New username
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_id": user.ID})
	}
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(accounts *auction.Accounts, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := accounts.Authenticate(req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
