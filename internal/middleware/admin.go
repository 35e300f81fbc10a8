package middleware

import (
	"net/http" // HTTP status codes

	"auction_house/internal/repository" // Data store

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the caller's role from the store on each
// request; role changes take effect without re-issuing tokens
func AdminOnlyMiddleware(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := store.GetUserByID(userID.(uint)) // Fetch user from the store
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		if user.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
