package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	iauth "github.com/fellowshipconnect/server/internal/auth"
	"github.com/fellowshipconnect/server/internal/database/testutil"
	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/crypto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var handlerUserCounter atomic.Int64

const testPassword = "Sup3rSecret!"

func openHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t)
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	hashed, err := crypto.HashPassword(testPassword)
	require.NoError(t, err)

	n := handlerUserCounter.Add(1)
	user := &models.User{
		Name:     fmt.Sprintf("Handler User %d", n),
		Email:    fmt.Sprintf("handler%d@example.com", n),
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestJWTService(t *testing.T) *iauth.JWTService {
	t.Helper()
	svc, err := iauth.NewJWTService(iauth.JWTConfig{
		Secret: "handler-test-secret",
		Issuer: "fellowship-connect-test",
	})
	require.NoError(t, err)
	return svc
}

// asUser simulates the auth middleware having validated a token for user.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, user.ID)
		c.Set(middleware.CtxRoleKey, user.Role)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success, "expected success envelope, got %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)
}
