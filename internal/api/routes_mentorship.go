package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/handlers"
	"github.com/fellowshipconnect/server/internal/middleware"
)

func registerMentorshipRoutes(api *gin.RouterGroup, handler *handlers.MentorshipHandler, requireAuth gin.HandlerFunc) {
	mentorship := api.Group("/mentorship", requireAuth)
	{
		mentorship.POST("", handler.Create)
		mentorship.GET("/me", handler.ListMine)
		mentorship.GET("/manage", middleware.RequireLeader(), handler.Manage)
		mentorship.GET("/:id", handler.Get)
		mentorship.POST("/:id/message", handler.AddMessage)

		requireLeader := middleware.RequireLeader()
		mentorship.PUT("/:id/accept", requireLeader, handler.Accept)
		mentorship.PUT("/:id/decline", requireLeader, handler.Decline)
		mentorship.PUT("/:id/schedule", requireLeader, handler.Schedule)
		mentorship.PUT("/:id/complete", requireLeader, handler.Complete)
	}
}
