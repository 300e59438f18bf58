package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Claim submissions carry multipart attachments; individual files are
// validated downstream, this caps the whole request body.
const DefaultMaxBodyBytes = 10 << 20

// BodyLimit rejects requests whose declared body exceeds maxBytes and
// hard-caps the reader for requests without a Content-Length.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"message": "Request body too large",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
