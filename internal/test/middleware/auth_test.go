package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fotoproof-backend/internal/config"
	"fotoproof-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tokenString
}

func authRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{SupabaseJWTSecret: testJWTSecret}

	router := gin.New()
	router.Use(middleware.AuthMiddleware(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(middleware.UserIDKey),
			"token":   c.GetString(middleware.AccessTokenKey),
		})
	})
	return router
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	router := authRouter(t)

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := authRouter(t)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	router := authRouter(t)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization header format")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router := authRouter(t)
	tokenString := signedToken(t, testJWTSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token has expired")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	router := authRouter(t)
	tokenString := signedToken(t, "some-other-secret", jwt.MapClaims{"sub": "user-123"})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := authRouter(t)
	tokenString := signedToken(t, testJWTSecret, jwt.MapClaims{"sub": "user-123"})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-123"`)
	assert.Contains(t, w.Body.String(), tokenString)
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	router := authRouter(t)
	tokenString := signedToken(t, testJWTSecret, jwt.MapClaims{"sub": "user-123"})

	req, _ := http.NewRequest("GET", "/test?access_token="+tokenString, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
