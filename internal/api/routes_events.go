package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
	"github.com/fellowshipconnect/server/internal/middleware"
)

func registerEventRoutes(api *gin.RouterGroup, handler *handlers.EventHandler, requireAuth gin.HandlerFunc) {
	events := api.Group("/events", requireAuth)
	{
		events.GET("", handler.List)
		events.GET("/:id", handler.Get)
		events.POST("", middleware.RequireLeader(), handler.Create)
		events.DELETE("/:id", handler.Delete)
		events.POST("/:id/rsvp", handler.RSVP)
		events.DELETE("/:id/rsvp", handler.CancelRSVP)
	}
}
