package middleware

import (
	"errors"
	"net/http"
	"strings"

	"fotoproof-backend/internal/config"
	"fotoproof-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserIDKey      = "user_id"
	AccessTokenKey = "access_token"
)

// AuthMiddleware verifies the Supabase HS256 access token of a photographer.
// The token comes from the Authorization header, or from the access_token
// query parameter for websocket upgrades where browsers cannot set headers.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c, msg)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			var errorMsg string
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				errorMsg = "token has expired"
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				errorMsg = "token signature is invalid"
			case errors.Is(err, jwt.ErrTokenMalformed):
				errorMsg = "token is malformed"
			default:
				errorMsg = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "invalid token",
				Message: errorMsg,
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abortUnauthorized(c, "invalid token claims")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			abortUnauthorized(c, "missing user id in token")
			return
		}

		c.Set(UserIDKey, sub)
		c.Set(AccessTokenKey, tokenString)
		c.Next()
	}
}

// bearerToken extracts the raw token. On failure it returns "" and the reason.
func bearerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if q := strings.TrimSpace(c.Query("access_token")); q != "" {
			return q, ""
		}
		return "", "missing authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "invalid authorization header format"
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "empty token"
	}
	return tokenString, ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msg})
}
