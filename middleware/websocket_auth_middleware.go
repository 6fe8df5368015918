package middleware

import (
	"net/http"
	"strings"

	"taskboard-app/taskboard/utils/token"

	"github.com/gin-gonic/gin"
)

// WebSocketAuthMiddleware accepts the token from the "token" query parameter,
// which browsers can set on a websocket handshake, or from a Bearer header.
func WebSocketAuthMiddleware(authService claimsValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// bearerToken reads the Authorization header only
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", token.ErrAuthHeaderMissing
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", token.ErrInvalidAuthFormat
	}
	return parts[1], nil
}
