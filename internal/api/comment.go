package api

import (
	"net/http" // HTTP status codes

	"auction_house/internal/auction" // Auction services

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AddCommentRequest carries a comment form submission
type AddCommentRequest struct {
	Body string `json:"body" binding:"required"` // Comment body
}

// AddCommentHandler records a comment by the authenticated user on a listing
func AddCommentHandler(comments *auction.Comments) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listingID, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req AddCommentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
			return
		}
		comment, err := comments.Add(listingID, userID, req.Body)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"comment_id": comment.ID, // New comment ID
			"listing_id": listingID,  // Listing commented on
			"user_id":    userID,     // Author
		}).Info("Comment added")
		c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comment": comment})
	}
}

// ListCommentsHandler returns a listing's comments, oldest first
func ListCommentsHandler(comments *auction.Comments) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := idParam(c, "id")
		if !ok {
			return
		}
		list, err := comments.ListForListing(listingID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": list})
	}
}
