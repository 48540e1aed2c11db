package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/georef/geo-reference-api/internal/constants"
	apierrors "github.com/georef/geo-reference-api/internal/errors"
)

// RequireAuth validates the Bearer JWT and stores the principal's id and
// roles in the request context.
func RequireAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			apierrors.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		// Numeric claims round-trip through JSON as float64.
		id, ok := claims["id"].(float64)
		if !ok || id <= 0 {
			apierrors.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}

		roles := make([]string, 0, 2)
		if raw, ok := claims["roles"].([]interface{}); ok {
			for _, r := range raw {
				if s, ok := r.(string); ok {
					roles = append(roles, s)
				}
			}
		}

		c.Set(constants.ContextKeyUserID, uint64(id))
		c.Set(constants.ContextKeyUserRoles, roles)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserRoles retrieves the current principal's roles from context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get(constants.ContextKeyUserRoles)
	if !exists {
		return nil
	}
	if v, ok := roles.([]string); ok {
		return v
	}
	return nil
}
