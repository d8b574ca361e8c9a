package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers item request routes on a group that already establishes the caller.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/requests")
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/all", h.ListOthers)
		group.GET("/:id", h.Get)
	}
}
