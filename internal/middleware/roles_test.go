package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fellowshipconnect/server/internal/models"
)

func rolesTestRouter(role string, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(CtxUserIDKey, "user-1")
		c.Set(CtxRoleKey, role)
		c.Next()
	})
	r.GET("/guarded", guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireLeaderAllowsLeaderRoles(t *testing.T) {
	for _, role := range []string{
		models.RoleFamilyLeader,
		models.RoleTeamLeader,
		models.RoleGeneralLeader,
		models.RoleSuperAdmin,
	} {
		r := rolesTestRouter(role, RequireLeader())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
		require.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}
}

func TestRequireLeaderRejectsMember(t *testing.T) {
	r := rolesTestRouter(models.RoleMember, RequireLeader())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSuperAdmin(t *testing.T) {
	r := rolesTestRouter(models.RoleGeneralLeader, RequireSuperAdmin())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusForbidden, w.Code)

	r = rolesTestRouter(models.RoleSuperAdmin, RequireSuperAdmin())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleList(t *testing.T) {
	r := rolesTestRouter(models.RoleTeamLeader, RequireRole(models.RoleGeneralLeader, models.RoleTeamLeader))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
