package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"zen/internal/auth"
)

const usernameContextKey = "username"

func Auth(gateway *auth.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Missing auth"})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		username, apiErr := gateway.ParseToken(token)
		if apiErr != nil {
			c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}

		c.Set(usernameContextKey, username)
		c.Next()
	}
}

// Username returns the authenticated caller set by Auth, or "".
func Username(c *gin.Context) string {
	value, ok := c.Get(usernameContextKey)
	if !ok {
		return ""
	}
	username, ok := value.(string)
	if !ok {
		return ""
	}
	return username
}
