package api

import (
	"errors"
	"net/http"
	"strconv"

	"auction_house/internal/auctionerrors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// mapError maps service errors to an HTTP status and a user-facing message.
// Every business error is recovered here and surfaced as a message; nothing
// is fatal to the process.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, "Only the listing owner may do that"
	case errors.Is(err, auctionerrors.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "No bids placed on this listing"
	case errors.Is(err, auctionerrors.ErrAlreadyClosed):
		return http.StatusConflict, "Listing is already closed"
	case errors.Is(err, auctionerrors.ErrListingOpen):
		return http.StatusConflict, "Listing is still open"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "Bid must exceed the current price"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "Invalid bid"
	case errors.Is(err, auctionerrors.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already taken"
	case errors.Is(err, auctionerrors.ErrPasswordMismatch):
		return http.StatusBadRequest, "Passwords must match"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes the mapped error response and logs unexpected failures
func respondError(c *gin.Context, err error) {
	status, message := mapError(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("requestID"),
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
		}).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": message})
}

// idParam parses a numeric path parameter; a second return of false means
// the 400 response has already been written
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// currentUserID returns the authenticated caller's ID, or zero for anonymous
// requests
func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
