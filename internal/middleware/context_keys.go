package middleware

import "github.com/gin-gonic/gin"

// userIDKey keys the authenticated user's ID in both contexts.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID set by the auth
// middleware. It checks the gin context first and falls back to the request
// context, which is where goroutines spawned off the request will find it.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
		return userID, true
	}
	return "", false
}
