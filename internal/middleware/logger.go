package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Logger tags each request with an id (reusing X-Request-ID when sent) and logs
// method, status, latency, client IP and path once the handler returns.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		log.Printf("[%s] %s | %d | %v | %s | %s",
			shortID(requestID),
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			path,
		)
		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", shortID(requestID), e.Err)
		}
	}
}

// RequestID returns the id assigned by Logger, or "-" outside a logged request.
func RequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return shortID(id)
	}
	return "-"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
