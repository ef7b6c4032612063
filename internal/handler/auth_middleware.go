package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lusotown-backend/internal/database"
)

// userIDKey context key under which the authenticated Supabase user id is stored.
const userIDKey = "user_id"

// AuthMiddleware validates the Supabase access token and stores the user id
// in the request context. Requests without a valid token are rejected.
func AuthMiddleware(client *database.SupabaseClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "user not authenticated",
			})
			return
		}

		user, err := client.GetClient().Auth.WithToken(token).GetUser()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "user not authenticated",
				"details": err.Error(),
			})
			return
		}

		c.Set(userIDKey, user.ID.String())
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUserID returns the authenticated user id, or "" outside the auth
// middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
