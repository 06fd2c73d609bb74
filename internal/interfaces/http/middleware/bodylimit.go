package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proptraka/backend/internal/interfaces/http/dto"
)

// BodyLimit caps the request body at maxBytes. Oversized requests fail at
// read time inside the handler's bind call with 413.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "request body too large", requestID))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
