package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db := openHandlerTestDB(t)
	handler := NewHealthHandler(db)

	router := gin.New()
	router.GET("/health", handler.Check)

	rec := performJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	decodeData(t, rec, &data)
	require.Equal(t, "ok", data.Status)
	require.Equal(t, "ok", data.Database)
}

func TestHealthCheckWithoutDatabase(t *testing.T) {
	handler := NewHealthHandler(nil)

	router := gin.New()
	router.GET("/health", handler.Check)

	rec := performJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)

	var data struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "degraded", data.Status)
}
