package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-hrms/internal/shared/contextutil"
)

const (
	HeaderRequestID     = "X-Request-ID"
	maxRequestIDLength  = 64
	contextKeyRequestID = "request_id"
)

// RequestID propagates a caller-supplied request id or mints one. Ids longer
// than the outbox column are replaced.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = uuid.NewString()
		}

		c.Set(contextKeyRequestID, rid)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}
