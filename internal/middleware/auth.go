package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cliniccare/clinic-scheduler/internal/config"
	"github.com/cliniccare/clinic-scheduler/internal/domain/user"
)

const ContextActor = "actor"

// Actor is the authenticated identity handed to core operations. Handlers
// pass it explicitly instead of digging through the request.
type Actor struct {
	ID   uint
	Role user.Role
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid authorization header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			return
		}

		sub, okID := claims["sub"].(float64)
		rawRole, _ := claims["role"].(string)

		role, roleErr := user.ParseRole(rawRole)
		if !okID || roleErr != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token payload"})
			return
		}

		c.Set(ContextActor, Actor{ID: uint(sub), Role: role})

		c.Next()
	}
}

// ActorFrom returns the authenticated actor set by AuthMiddleware.
func ActorFrom(c *gin.Context) Actor {
	return c.MustGet(ContextActor).(Actor)
}
