package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/georef/geo-reference-api/internal/constants"
	apierrors "github.com/georef/geo-reference-api/internal/errors"
)

// RequireAdmin allows only principals carrying the admin role. It must run
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, role := range GetUserRoles(c) {
			if role == constants.RoleAdmin {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Administrator role required")
		c.Abort()
	}
}

// IsAdmin reports whether the current principal carries the admin role.
func IsAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == constants.RoleAdmin {
			return true
		}
	}
	return false
}
