package middleware

import (
	"net/http"
	"strings"

	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	ContextClaims   = "claims"
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AccessTokenParam is the query parameter carrying the JWT on websocket upgrades
const AccessTokenParam = "access_token"

// TokenValidator is the part of AuthService the middleware needs
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It only reads "Authorization: Bearer <token>".
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, false)
}

// WebSocketAuthMiddleware also accepts the access_token query parameter,
// since browsers cannot set headers on a websocket upgrade. Mount it on the
// upgrade route only.
func WebSocketAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, true)
}

func authenticate(validator TokenValidator, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c, allowQuery)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		// set user info in context for handlers to use
		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

func extractToken(c *gin.Context, allowQuery bool) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		return token, found && token != ""
	}
	if !allowQuery {
		return "", false
	}
	if token := c.Query(AccessTokenParam); token != "" {
		return token, true
	}
	return "", false
}

// RequireRole checks if the user has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role not found in token"})
			return
		}

		userRole, ok := role.(string)
		if !ok || userRole != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "insufficient permissions",
				"required": requiredRole,
			})
			return
		}

		c.Next()
	}
}

// RequireAdmin is a convenience function for requiring admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
