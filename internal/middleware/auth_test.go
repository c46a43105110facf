package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminal-bench/supportdesk/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret, clientID string) string {
	t.Helper()
	claims := &Claims{
		ClientID: clientID,
		Email:    "agent@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	t.Run("should reject missing auth header", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		Auth(cfg)(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject invalid auth header format", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set("Authorization", "Basic token123")

		Auth(cfg)(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set("Authorization", "Bearer invalid.token.here")

		Auth(cfg)(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject token signed with another secret", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "client-1"))

		Auth(cfg)(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should accept valid token and expose claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "client-1"))

		Auth(cfg)(c)
		assert.NotEqual(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "client-1", GetClientID(c))
	})

	t.Run("should reject expired token", func(t *testing.T) {
		claims := &Claims{
			ClientID: "client-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set("Authorization", "Bearer "+token)

		Auth(cfg)(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
