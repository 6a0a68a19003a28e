package middlewares

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lamji/crud-api-mern-sub001/entity"
	"github.com/lamji/crud-api-mern-sub001/pkg/resp"
	"github.com/lamji/crud-api-mern-sub001/utils"
)

// AuthMiddleware parses the bearer token once and stores the resolved
// Principal in the context. No role checks happen here; those belong to
// RequireCapability.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set("principal", entity.Principal{
			UserName: claims.UserName,
			Role:     entity.ParseRole(claims.Role),
			Session:  claims.Session,
		})
		c.Next()
	}
}

// RequireCapability enforces the authorization policy for the route.
func RequireCapability(cap entity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := utils.CurrentPrincipal(c)
		if !entity.Allowed(p.Role, cap) {
			resp.Forbidden(c, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
