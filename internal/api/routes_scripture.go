package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
)

func registerScriptureRoutes(api *gin.RouterGroup, handler *handlers.ScriptureHandler, requireAuth gin.HandlerFunc) {
	scripture := api.Group("/scripture", requireAuth)
	{
		scripture.GET("/daily", handler.Daily)
		scripture.GET("/random", handler.Random)
	}
}
