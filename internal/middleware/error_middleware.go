package middleware

import (
	"whispr-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs errors handlers attached to the context. Handlers have
// already written their response by the time this runs, so it only records.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Errorf("request error: %s", err.Error())
		}
	}
}
