package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/lamji/crud-api-mern-sub001/entity"
)

// CurrentPrincipal returns the authenticated caller set by the auth
// middleware, or an anonymous zero Principal.
func CurrentPrincipal(c *gin.Context) entity.Principal {
	if v, ok := c.Get("principal"); ok {
		if p, ok := v.(entity.Principal); ok {
			return p
		}
	}
	return entity.Principal{}
}
