package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
	"github.com/fellowshipconnect/server/internal/middleware"
)

func registerInviteRoutes(api *gin.RouterGroup, handler *handlers.InviteHandler, requireAuth gin.HandlerFunc) {
	// Code validation is public so the registration form can check codes
	// before an account exists.
	api.GET("/invites/validate/:code", handler.Validate)

	invites := api.Group("/invites", requireAuth, middleware.RequireSuperAdmin())
	{
		invites.POST("", handler.Create)
		invites.GET("", handler.List)
		invites.DELETE("/:id", handler.Deactivate)
	}
}
