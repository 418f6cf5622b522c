package server

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request ID in both directions
	HeaderRequestID = "X-Request-ID"

	contextKeyRequestID = "requestId"
)

// RequestID propagates the caller's X-Request-ID or generates a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(contextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}

// RequestIDFromContext returns the request ID set by RequestID
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}
