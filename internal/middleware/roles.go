package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/response"
)

// RequireRole aborts the request unless the authenticated user's privilege
// role is one of the supplied roles. It must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(CtxRoleKey)
		if role == "" {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[role]; !ok {
			response.Error(c, errors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireLeader admits any leader tier or super admin.
func RequireLeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRoleKey)
		if role == "" {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !models.IsLeaderRole(role) {
			response.Error(c, errors.NewForbidden("Leader access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin restricts a route to super admins.
func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleSuperAdmin)
}
