// File: internal/common/context_keys.go
package common

import "github.com/gin-gonic/gin"

const (
	// UserIDKey is the gin context key for the authenticated user's ID.
	UserIDKey = "userID"
	// UserEmailKey is the gin context key for the authenticated user's email.
	UserEmailKey = "userEmail"
)

// GetUserIDFromContext retrieves the authenticated user ID from the gin
// context, or "" when the request is unauthenticated.
func GetUserIDFromContext(c *gin.Context) string {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return ""
	}
	userID, ok := val.(string)
	if !ok {
		return ""
	}
	return userID
}
