package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
)

func registerPostRoutes(api *gin.RouterGroup, handler *handlers.PostHandler, requireAuth gin.HandlerFunc) {
	posts := api.Group("/posts", requireAuth)
	{
		posts.GET("", handler.List)
		posts.POST("", handler.Create)
		posts.GET("/:id", handler.Get)
		posts.DELETE("/:id", handler.Delete)
		posts.POST("/:id/like", handler.Like)
		posts.POST("/:id/pray", handler.Pray)
		posts.POST("/:id/reactions/:kind", handler.React)
		posts.POST("/:id/comment", handler.Comment)
	}
}
