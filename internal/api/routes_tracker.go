package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
)

func registerTrackerRoutes(api *gin.RouterGroup, handler *handlers.TrackerHandler, requireAuth gin.HandlerFunc) {
	tracker := api.Group("/tracker", requireAuth)
	{
		tracker.GET("/month", handler.Month)
		tracker.POST("/day", handler.UpsertDay)
	}
}
