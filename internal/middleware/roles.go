package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
)

// RequireRoles gates a route group by role. Runs after AuthMiddleware.
func RequireRoles(allowed ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)

		for _, role := range allowed {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Forbidden - You do not have permission to perform this action",
		})
	}
}
