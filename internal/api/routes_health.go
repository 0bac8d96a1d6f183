package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/handlers"
)

func registerHealthRoutes(r *gin.Engine, db *gorm.DB) {
	handler := handlers.NewHealthHandler(db)
	r.GET("/health", handler.Check)
	r.GET("/api/health", handler.Check)
}
