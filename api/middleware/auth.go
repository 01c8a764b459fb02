package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "user_id"

// Claims issued by the auth service.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for userID. Used by tests and local tooling;
// production tokens come from the auth service.
func GenerateToken(secret string, userID int64, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "encuentros",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(secret, raw string) (int64, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return 0, errors.New("invalid token")
	}
	return claims.UserID, nil
}

// ActorMiddleware resolves the calling user from X-User-ID or a Bearer JWT.
// Requests without either pass through anonymously; handlers then rely on ids in
// the request itself.
func ActorMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("X-User-ID"); header != "" {
			userID, err := strconv.ParseInt(header, 10, 64)
			if err != nil || userID <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid X-User-ID format"})
				return
			}
			c.Set(actorKey, userID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if jwtSecret == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "token authentication is not configured"})
				return
			}
			userID, err := parseToken(jwtSecret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
				return
			}
			c.Set(actorKey, userID)
		}
		c.Next()
	}
}

// ActorFrom returns the user resolved by ActorMiddleware, if any.
func ActorFrom(c *gin.Context) (int64, bool) {
	userID := c.GetInt64(actorKey)
	return userID, userID > 0
}
