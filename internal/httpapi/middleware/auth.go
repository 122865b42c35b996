package middleware

import (
	"net/http"
	"strings"

	"storehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key holding the resolved caller identity.
const IdentityKey = "identity"

// AuthMiddleware checks for a valid Bearer token and resolves the caller
// identity for the request. Missing or invalid credentials are 401; role
// checks come later and are 403.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.Authenticate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(IdentityKey, claims)
		c.Next()
	}
}

// Identity returns the authenticated caller set by AuthMiddleware.
func Identity(c *gin.Context) (*service.Claims, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}

// RequireRole gates a route group on the caller's role. An authenticated
// caller with the wrong role gets 403, never a peek at the resource.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Identity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}
