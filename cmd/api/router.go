package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/shared/middleware"
	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		c.ArtistHandler.RegisterRoutes(v1)
		c.CategoryHandler.RegisterRoutes(v1)
		c.ArtworkHandler.RegisterRoutes(v1)
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := c.Query.Ping(pingCtx); err != nil {
			response.ServiceUnavailable(ctx, "database unreachable: "+err.Error())
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
			"driver":  c.Config.Database.Driver,
		})
	}
}
