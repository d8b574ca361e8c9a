package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes on a group that already establishes the caller.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/bookings")
	{
		group.GET("", h.List)
		group.GET("/owner", h.ListOwner)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.ChangeStatus)
	}
}
