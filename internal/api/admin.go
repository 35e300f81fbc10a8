package api

import (
	"net/http" // HTTP status codes

	"auction_house/internal/auction" // Auction services

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreateCategoryRequest carries a new category title
type CreateCategoryRequest struct {
	Title string `json:"title" binding:"required"` // Category title
}

// CreateCategoryHandler adds a category (admin only). Categories are
// immutable once created.
func CreateCategoryHandler(engine *auction.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		category, err := engine.CreateCategory(req.Title)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,    // New category ID
			"title":       category.Title, // Category title
		}).Info("Category created")
		c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
	}
}
