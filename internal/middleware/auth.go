package middleware

import (
	"net/http"

	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

// IdentityCookie is the name of the signed identity cookie set at login.
const IdentityCookie = "opine_token"

// CookieAuth validates the identity cookie and stashes the decoded identity
// on the context.
func CookieAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(IdentityCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		identity, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set("email", identity.Email)
		c.Set("username", identity.Username)
		c.Set("role", identity.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Runs after CookieAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
