package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gallery-backend/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Msg("Panic recovered")

				response.ErrorResponse(c, http.StatusInternalServerError, "SYS_001", "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
