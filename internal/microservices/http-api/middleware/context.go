package middleware

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's id set by AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetRole returns the authenticated user's role, empty when unset
func GetRole(c *gin.Context) string {
	v, _ := c.Get(ContextRole)
	role, _ := v.(string)
	return role
}
