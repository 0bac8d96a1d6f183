package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
)

func registerPrayerRoutes(api *gin.RouterGroup, handler *handlers.PrayerHandler, requireAuth gin.HandlerFunc) {
	prayers := api.Group("/prayers", requireAuth)
	{
		prayers.GET("", handler.List)
		prayers.POST("", handler.Create)
		prayers.GET("/stats", handler.Stats)
		prayers.PUT("/:id", handler.Update)
		prayers.DELETE("/:id", handler.Delete)
	}
}
