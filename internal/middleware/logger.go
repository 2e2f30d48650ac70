package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/backend/internal/logger"
)

// Logger middleware for logging HTTP requests
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		log.WithContext(c.Request.Context()).Info("request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", statusCode),
			logger.Duration("latency", latency))
	}
}
