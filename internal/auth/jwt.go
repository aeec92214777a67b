// Package auth validates HMAC-signed bearer tokens. Token issuing and user
// management live elsewhere; this layer only establishes which user a
// request acts as.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const userIDKey = "user_id"

// Middleware validates the Authorization bearer token and stores the user
// id claim on the request context. Missing token responds 403, invalid
// token 401, matching the product's existing clients.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "No token provided"})
			c.Abort()
			return
		}

		userID, err := verify(token, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to authenticate"})
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id stored by the middleware.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func verify(token, secret string) (int64, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return 0, fmt.Errorf("invalid token claims")
	}

	// numeric claims decode as float64
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("token missing user id claim")
	}
	return int64(id), nil
}

// extractToken reads the "Bearer <token>" authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
