package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
	"github.com/fellowshipconnect/server/internal/middleware"
)

func registerAdminRoutes(api *gin.RouterGroup, handler *handlers.AdminHandler, requireAuth gin.HandlerFunc) {
	admin := api.Group("/admin", requireAuth, middleware.RequireSuperAdmin())
	{
		admin.GET("/stats", handler.Stats)
		admin.GET("/users", handler.ListUsers)
		admin.PUT("/users/:id/role", handler.UpdateRole)
		admin.DELETE("/users/:id", handler.DeactivateUser)
		admin.PUT("/posts/:id/flag", handler.FlagPost)
	}
}
