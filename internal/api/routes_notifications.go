package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
)

func registerNotificationRoutes(api *gin.RouterGroup, handler *handlers.NotificationHandler, requireAuth gin.HandlerFunc) {
	notifications := api.Group("/notifications", requireAuth)
	{
		notifications.GET("", handler.List)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.PUT("/mark-all-read", handler.MarkAllRead)
		notifications.PUT("/:id/read", handler.MarkRead)
		notifications.DELETE("/read/all", handler.DeleteRead)
		notifications.DELETE("/:id", handler.Delete)
	}
}
