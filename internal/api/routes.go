package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the API endpoints onto the gin engine.
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/", h.Root)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/generate", h.Generate)
		apiGroup.POST("/chat", h.Chat)
		apiGroup.POST("/enhance", h.Enhance)
		apiGroup.POST("/route", h.Route)

		apiGroup.GET("/projects", h.ListProjects)
		apiGroup.GET("/projects/:id", h.GetProject)

		apiGroup.GET("/health", h.Health)
		apiGroup.GET("/status", h.Status)
		apiGroup.GET("/models", h.ListModels)
	}
}
