package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/realtime"
	"github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/response"
)

// RealtimeHandler upgrades authenticated members onto the websocket hub.
type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Connect upgrades the request to a websocket subscribed to the requested
// streams. Browsers cannot set Authorization headers on websocket dials, so
// the auth middleware also accepts the token as a query parameter here.
func (h *RealtimeHandler) Connect(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var streams []string
	for _, raw := range strings.Split(c.Query("streams"), ",") {
		if s := strings.TrimSpace(raw); s != "" {
			streams = append(streams, s)
		}
	}

	h.hub.Serve(userID, streams, c.Writer, c.Request)
}
