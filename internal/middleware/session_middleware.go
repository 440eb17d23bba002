package middleware

import (
	"context"
	"strings"

	"whispr-server/internal/services"
	"whispr-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the caller's identity from the bearer token and
// attaches it to the request context. It never aborts: services enforce
// authentication at their own point in the validation order, so a missing or
// invalid token simply means no session downstream.
func SessionMiddleware(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		session, err := identity.ParseAccessToken(token)
		if err != nil {
			c.Next()
			return
		}

		ctx := services.WithSession(c.Request.Context(), session)
		ctx = context.WithValue(ctx, logger.UserIdKey, session.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
