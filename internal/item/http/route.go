package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers item routes. Search is open to anonymous callers and
// goes on public; everything else acts on behalf of a caller and goes on protected.
func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	public.GET("/items/search", h.Search)

	group := protected.Group("/items")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/comment", h.AddComment)
	}
}
