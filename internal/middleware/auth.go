package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/terminal-bench/supportdesk/internal/config"
)

// Claims represents JWT claims for API clients
type Claims struct {
	ClientID string `json:"client_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Auth middleware validates JWT bearer tokens
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("client_id", claims.ClientID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// GetClientID extracts the authenticated client id from context
func GetClientID(c *gin.Context) string {
	clientID, _ := c.Get("client_id")
	if s, ok := clientID.(string); ok {
		return s
	}
	return ""
}
