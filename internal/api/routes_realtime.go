package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
)

func registerRealtimeRoutes(api *gin.RouterGroup, handler *handlers.RealtimeHandler, requireAuth gin.HandlerFunc) {
	// Websocket clients pass the session token as a query parameter; the auth
	// middleware accepts that form for this endpoint.
	api.GET("/realtime", requireAuth, handler.Connect)
}
