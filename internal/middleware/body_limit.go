package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit fits a base64 encoded invoice PDF.
const DefaultBodyLimit int64 = 10 << 20

// BodyLimit caps request bodies at maxBytes. Reads beyond the cap fail, which
// surfaces as a bind error in the handler.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultBodyLimit
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"status":      "error",
				"status_code": http.StatusRequestEntityTooLarge,
				"message":     "Request body too large",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
