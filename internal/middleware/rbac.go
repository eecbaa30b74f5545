package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/models"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/response"
)

// Self admits a caller whose id equals the :id path parameter, letting
// students and staff read their own calendar and leave history.
const Self = "SELF"

// Claims returns the verified token claims, or nil on unauthenticated routes.
func Claims(c *gin.Context) *models.JWTClaims {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*models.JWTClaims)
	return claims
}

// RBAC admits callers holding one of the listed roles. Passing Self also
// admits any caller acting on their own person id.
func RBAC(allowed ...string) gin.HandlerFunc {
	self := false
	set := map[models.UserRole]bool{}
	for _, a := range allowed {
		if a == Self {
			self = true
		} else {
			set[models.UserRole(a)] = true
		}
	}

	return func(c *gin.Context) {
		claims := Claims(c)
		switch {
		case claims == nil:
			response.Error(c, appErrors.ErrUnauthorized)
		case set[claims.Role]:
			c.Next()
			return
		case self && claims.UserID != "" && c.Param("id") == claims.UserID:
			c.Next()
			return
		default:
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("role %s cannot access this resource", claims.Role)))
		}
		c.Abort()
	}
}

// RequireRoles is RBAC for typed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed = append(allowed, string(r))
	}
	return RBAC(allowed...)
}
