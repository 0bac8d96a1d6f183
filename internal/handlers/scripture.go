package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/services"
	"github.com/fellowshipconnect/server/pkg/response"
)

// ScriptureHandler exposes the daily and random verse endpoints.
type ScriptureHandler struct {
	service *services.ScriptureService
}

// NewScriptureHandler constructs a ScriptureHandler.
func NewScriptureHandler(service *services.ScriptureService) *ScriptureHandler {
	return &ScriptureHandler{service: service}
}

// Daily returns the verse of the day.
func (h *ScriptureHandler) Daily(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Daily(requestContext(c)))
}

// Random returns a random curated verse.
func (h *ScriptureHandler) Random(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Random(requestContext(c)))
}
