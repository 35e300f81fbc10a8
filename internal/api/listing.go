package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"auction_house/internal/auction" // Auction services
	"auction_house/internal/domain"  // Domain models
	"auction_house/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const listingCacheTTL = 60 * time.Second

// Cache keys for the read projections invalidated by listing writes
const (
	openListingsKey   = "listings:open"
	openCategoriesKey = "categories:open"
)

func categoryListingsKey(categoryID uint) string {
	return "listings:category:" + strconv.Itoa(int(categoryID))
}

// CreateListingRequest carries a new-listing form submission
type CreateListingRequest struct {
	Title       string  `json:"title" binding:"required"`       // Listing title
	Description string  `json:"description" binding:"required"` // Listing description
	CategoryID  uint    `json:"category_id" binding:"required"` // Category the listing belongs to
	ImageURL    *string `json:"image_url"`                      // Optional image URL
	StartingBid float64 `json:"starting_bid" binding:"gte=0"`   // Starting bid amount
}

// CreateListingHandler creates a listing owned by the authenticated user
func CreateListingHandler(engine *auction.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateListingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		listing, err := engine.CreateListing(userID, req.CategoryID, req.Title, req.Description, req.ImageURL, req.StartingBid)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"listing_id":   listing.ID,          // New listing ID
			"user_id":      userID,              // Owner
			"category_id":  listing.CategoryID,  // Category
			"starting_bid": listing.StartingBid, // Starting bid
		}).Info("Listing created")
		// Invalidate the browse projections this listing now appears in
		invalidateListingCaches(c, rdb, listing.CategoryID)
		c.JSON(http.StatusCreated, gin.H{"message": "Listing created", "listing": listing})
	}
}

// GetListingHandler returns the listing detail projection for the viewer
func GetListingHandler(engine *auction.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, ok := idParam(c, "id")
		if !ok {
			return
		}
		view, err := engine.ViewListing(listingID, currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// ListOpenListingsHandler returns all open listings, newest first
func ListOpenListingsHandler(engine *auction.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []domain.Listing
		if found, err := utils.GetCache(ctx, rdb, openListingsKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"listings": cached, "cached": true})
			return
		}
		listings, err := engine.ListOpenListings()
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, openListingsKey, listings, listingCacheTTL)
		c.JSON(http.StatusOK, gin.H{"listings": listings, "cached": false})
	}
}

// ListByCategoryHandler returns the open listings in one category
func ListByCategoryHandler(engine *auction.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := idParam(c, "id")
		if !ok {
			return
		}
		ctx := context.Background() // Context for Redis operations
		cacheKey := categoryListingsKey(categoryID)
		var cached []domain.Listing
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"listings": cached, "cached": true})
			return
		}
		listings, err := engine.ListByCategory(categoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, listings, listingCacheTTL)
		c.JSON(http.StatusOK, gin.H{"listings": listings, "cached": false})
	}
}

// ListCategoriesHandler returns the categories that have open listings; pass
// ?all=true for every category
func ListCategoriesHandler(engine *auction.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("all") == "true" {
			categories, err := engine.ListCategories()
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"categories": categories})
			return
		}
		ctx := context.Background() // Context for Redis operations
		var cached []domain.Category
		if found, err := utils.GetCache(ctx, rdb, openCategoriesKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"categories": cached, "cached": true})
			return
		}
		categories, err := engine.ListCategoriesWithOpenListings()
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, openCategoriesKey, categories, listingCacheTTL)
		c.JSON(http.StatusOK, gin.H{"categories": categories, "cached": false})
	}
}

// CloseListingHandler ends bidding on a listing the caller owns
func CloseListingHandler(engine *auction.Engine, rdb *redis.Client) gin.HandlerFunc {
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
		if err := engine.CloseListing(listingID, userID); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"listing_id": listingID, // Closed listing
			"user_id":    userID,    // Owner who closed it
		}).Info("Listing closed")
		// The listing just left every open-listing projection
		if listing, err := engine.GetListing(listingID); err == nil {
			invalidateListingCaches(c, rdb, listing.CategoryID)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Listing closed"})
	}
}

// invalidateListingCaches drops the browse projections affected by a listing
// create or close
func invalidateListingCaches(c *gin.Context, rdb *redis.Client, categoryID uint) {
	ctx := context.Background() // Context for Redis operations
	if err := utils.DeleteCache(ctx, rdb, openListingsKey, categoryListingsKey(categoryID), openCategoriesKey); err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("requestID"),
			"error":      err.Error(),
		}).Warn("Failed to invalidate listing caches")
	}
}
