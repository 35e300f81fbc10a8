package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"auction_house/internal/auction" // Auction services
	"auction_house/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

func watchlistCountKey(userID uint) string {
	return "watchlist:count:user:" + strconv.Itoa(int(userID))
}

// ToggleWatchlistRequest carries the desired watch state for a listing.
// Watching is a pointer so an explicit false is distinguishable from a
// missing field.
type ToggleWatchlistRequest struct {
	Watching *bool `json:"watching" binding:"required"` // Desired state
}

// ToggleWatchlistHandler drives the caller's watchlist to the desired state
// for one listing; both directions are idempotent
func ToggleWatchlistHandler(watchlist *auction.Watchlist, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listingID, ok := idParam(c, "listing_id")
		if !ok {
			return
		}
		var req ToggleWatchlistRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := watchlist.Toggle(userID, listingID, *req.Watching); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"listing_id": listingID,     // Listing toggled
			"user_id":    userID,        // Watcher
			"watching":   *req.Watching, // Desired state
		}).Info("Watchlist toggled")
		// Invalidate the badge count for this user
		ctx := context.Background()
		_ = utils.DeleteCache(ctx, rdb, watchlistCountKey(userID))
		c.JSON(http.StatusOK, gin.H{"message": "Watchlist updated", "watching": *req.Watching})
	}
}

// ListWatchlistHandler returns the caller's watched listings
func ListWatchlistHandler(watchlist *auction.Watchlist) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listings, err := watchlist.ListForUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"listings": listings})
	}
}

// WatchlistCountHandler returns the caller's badge count, cached for 60s
func WatchlistCountHandler(watchlist *auction.Watchlist, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background() // Context for Redis operations
		cacheKey := watchlistCountKey(userID)
		var cached int64
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"count": cached, "cached": true})
			return
		}
		count, err := watchlist.CountForUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, count, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"count": count, "cached": false})
	}
}
