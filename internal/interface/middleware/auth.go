package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/userkit/account-service/pkg/helpers"
	"github.com/userkit/account-service/pkg/response"
)

// SessionKey returns the Redis key under which a user's session hash lives.
func SessionKey(userID string) string { return "user:session:" + userID }

// Auth validates the bearer access token and ensures an active session exists
// in Redis. It sets userID, userName, and userEmail in the Gin context on
// success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		// A valid token alone is not enough; the session must still be live.
		data, err := rdb.HGetAll(c.Request.Context(), SessionKey(claims.UserID)).Result()
		if err != nil || len(data) == 0 {
			response.AbortFail(c, http.StatusUnauthorized, "session expired", nil)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userName", data["username"])
		c.Set("userEmail", data["email"])
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
