package middleware

import (
	"net/http"

	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// claimsValidator is the part of the auth service the middleware needs
type claimsValidator interface {
	ValidateToken(tokenString string) (*services.JWTClaims, error)
}

// AuthMiddleware rejects requests without a valid Bearer token
func AuthMiddleware(authService claimsValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
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

// PrincipalMiddleware records the caller when a valid token is present and
// lets anonymous requests through. Authorization checks would hook in here.
func PrincipalMiddleware(authService claimsValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if tokenString, err := bearerToken(c); err == nil {
				if claims, err := authService.ValidateToken(tokenString); err == nil {
					setPrincipal(c, claims)
				}
			}
		}
		c.Next()
	}
}

func setPrincipal(c *gin.Context, claims *services.JWTClaims) {
	c.Set("userID", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("username", claims.Username)
}

// UserID returns the principal set by the auth middlewares
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
