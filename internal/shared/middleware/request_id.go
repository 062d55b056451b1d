package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader = "X-Request-Id"
	RequestIDKey    = "request_id"

	maxRequestIDLength = 128
)

// RequestID propagates an incoming X-Request-Id or generates one. The id is
// set on the gin context, the response header and, through a child zerolog
// logger, on the request context so zerolog.Ctx(ctx) tags every line.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		logger := log.With().Str(RequestIDKey, requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()
	}
}
