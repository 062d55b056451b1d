package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger writes one line per request. 5xx answers are logged at error level.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		level := zerolog.InfoLevel
		if status >= 500 {
			level = zerolog.ErrorLevel
		}

		event := log.WithLevel(level).
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency_ms", time.Since(start)).
			Str("ip", c.ClientIP())
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Msg("HTTP Request")
	}
}
