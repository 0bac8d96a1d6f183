package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/app"
	iauth "github.com/fellowshipconnect/server/internal/auth"
	"github.com/fellowshipconnect/server/internal/handlers"
	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/realtime"
	"github.com/fellowshipconnect/server/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config, hub *realtime.Hub) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	registerHealthRoutes(r, db)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// Shared services. Notifications fan out through the realtime hub, so the
	// hub-aware instance is threaded into every producer.
	notifications, err := services.NewNotificationService(db, hub)
	if err != nil {
		return nil, err
	}
	scripture := services.NewScriptureService(
		services.WithScriptureBaseURL(cfg.Scripture.BaseURL),
		services.WithScriptureHTTPClient(&http.Client{Timeout: cfg.Scripture.Timeout}),
	)

	authHandler, err := handlers.NewAuthHandler(db, jwt)
	if err != nil {
		return nil, err
	}
	inviteHandler, err := handlers.NewInviteHandler(db)
	if err != nil {
		return nil, err
	}
	prayerHandler, err := handlers.NewPrayerHandler(db)
	if err != nil {
		return nil, err
	}
	postHandler, err := handlers.NewPostHandler(db, notifications)
	if err != nil {
		return nil, err
	}
	eventHandler, err := handlers.NewEventHandler(db, notifications)
	if err != nil {
		return nil, err
	}
	mentorshipHandler, err := handlers.NewMentorshipHandler(db, notifications)
	if err != nil {
		return nil, err
	}
	trackerHandler, err := handlers.NewTrackerHandler(db)
	if err != nil {
		return nil, err
	}
	userHandler, err := handlers.NewUserHandler(db)
	if err != nil {
		return nil, err
	}
	postsForAdmin, err := services.NewPostService(db, notifications)
	if err != nil {
		return nil, err
	}
	adminHandler, err := handlers.NewAdminHandler(db, postsForAdmin)
	if err != nil {
		return nil, err
	}
	notificationHandler := handlers.NewNotificationHandler(notifications)
	scriptureHandler := handlers.NewScriptureHandler(scripture)
	realtimeHandler := handlers.NewRealtimeHandler(hub)

	requireAuth := middleware.Auth(jwt)
	api := r.Group("/api")

	registerAuthRoutes(api, authHandler, requireAuth, cfg)
	registerInviteRoutes(api, inviteHandler, requireAuth)
	registerPrayerRoutes(api, prayerHandler, requireAuth)
	registerPostRoutes(api, postHandler, requireAuth)
	registerEventRoutes(api, eventHandler, requireAuth)
	registerNotificationRoutes(api, notificationHandler, requireAuth)
	registerMentorshipRoutes(api, mentorshipHandler, requireAuth)
	registerTrackerRoutes(api, trackerHandler, requireAuth)
	registerUserRoutes(api, userHandler, requireAuth)
	registerAdminRoutes(api, adminHandler, requireAuth)
	registerScriptureRoutes(api, scriptureHandler, requireAuth)
	registerRealtimeRoutes(api, realtimeHandler, requireAuth)

	return r, nil
}
