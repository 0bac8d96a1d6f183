package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/app"
	"github.com/fellowshipconnect/server/internal/handlers"
	"github.com/fellowshipconnect/server/internal/middleware"
)

func registerAuthRoutes(api *gin.RouterGroup, handler *handlers.AuthHandler, requireAuth gin.HandlerFunc, cfg *app.Config) {
	auth := api.Group("/auth")
	{
		// Public credential endpoints carry their own rate limit.
		throttle := middleware.RateLimit(cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow)
		auth.POST("/register", throttle, handler.Register)
		auth.POST("/login", throttle, handler.Login)

		auth.GET("/me", requireAuth, handler.Me)
	}
}
