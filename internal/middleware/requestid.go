package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pulseboard/backend/internal/logger"
)

// RequestID assigns a correlation ID to every request. An incoming
// X-Request-ID header is honored; otherwise a UUID is generated. The ID is
// stored on the gin context, propagated through the request context for
// logging, and echoed back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}
