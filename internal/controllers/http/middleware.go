package http

import (
	"net/http"
	"strings"

	"shop-service/internal/infra"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// AuthRequired resolves the bearer token through the auth collaborator and
// stores the user id in the request context. Nothing past this middleware
// ever sees a credential.
func AuthRequired(auth infra.AuthClientInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, MessageResponse{Message: "Unauthorized"})
			return
		}

		userID, err := auth.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, MessageResponse{Message: "Invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func userFrom(c *gin.Context) uint64 {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0
	}
	userID, _ := v.(uint64)
	return userID
}
