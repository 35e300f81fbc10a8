package api

import (
	"net/http" // HTTP status codes

	"auction_house/internal/auction" // Auction services

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// PlaceBidRequest carries a bid form submission
type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"` // Bid amount
}

// PlaceBidHandler records a bid by the authenticated user on a listing
func PlaceBidHandler(engine *auction.Engine) gin.HandlerFunc {
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
		var req PlaceBidRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		bid, err := engine.PlaceBid(listingID, userID, req.Amount)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"listing_id": listingID,   // Listing bid on
				"user_id":    userID,      // Bidder
				"amount":     req.Amount,  // Attempted amount
				"error":      err.Error(), // Rejection reason
			}).Warn("Bid rejected")
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"bid_id":     bid.ID,     // New bid ID
			"listing_id": listingID,  // Listing bid on
			"user_id":    userID,     // Bidder
			"amount":     bid.Amount, // Bid amount
		}).Info("Bid placed")
		c.JSON(http.StatusCreated, gin.H{"message": "Bid placed", "bid": bid})
	}
}
