package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fellowshipconnect/server/internal/models"
)

func TestRegisterEndpointCreatesMember(t *testing.T) {
	db := openHandlerTestDB(t)
	handler, err := NewAuthHandler(db, newTestJWTService(t))
	require.NoError(t, err)

	router := gin.New()
	router.POST("/api/auth/register", handler.Register)

	rec := performJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Grace Taylor",
		"email":    "grace@example.com",
		"password": "open-sesame",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		Message string      `json:"message"`
		Token   string      `json:"token"`
		User    models.User `json:"user"`
	}
	decodeData(t, rec, &data)
	require.NotEmpty(t, data.Token)
	require.Equal(t, "grace@example.com", data.User.Email)
	require.Equal(t, models.RoleMember, data.User.Role)
}

func TestRegisterEndpointRejectsShortPassword(t *testing.T) {
	db := openHandlerTestDB(t)
	handler, err := NewAuthHandler(db, newTestJWTService(t))
	require.NoError(t, err)

	router := gin.New()
	router.POST("/api/auth/register", handler.Register)

	rec := performJSON(t, router, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Grace Taylor",
		"email":    "grace@example.com",
		"password": "short",
	})
	requireErrorCode(t, rec, http.StatusBadRequest, "BAD_REQUEST")
}

func TestLoginEndpoint(t *testing.T) {
	db := openHandlerTestDB(t)
	handler, err := NewAuthHandler(db, newTestJWTService(t))
	require.NoError(t, err)
	user := seedUser(t, db, models.RoleMember)

	router := gin.New()
	router.POST("/api/auth/login", handler.Login)

	rec := performJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    user.Email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &data)
	require.NotEmpty(t, data.Token)

	rec = performJSON(t, router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    user.Email,
		"password": "wrong-password",
	})
	requireErrorCode(t, rec, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func TestMeEndpointRequiresAuthContext(t *testing.T) {
	db := openHandlerTestDB(t)
	handler, err := NewAuthHandler(db, newTestJWTService(t))
	require.NoError(t, err)
	user := seedUser(t, db, models.RoleMember)

	router := gin.New()
	router.GET("/api/auth/me", handler.Me)
	router.GET("/api/auth/me-authed", asUser(user), handler.Me)

	rec := performJSON(t, router, http.MethodGet, "/api/auth/me", nil)
	requireErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")

	rec = performJSON(t, router, http.MethodGet, "/api/auth/me-authed", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		User models.User `json:"user"`
	}
	decodeData(t, rec, &data)
	require.Equal(t, user.ID, data.User.ID)
	require.Empty(t, data.User.Password)
}
