package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSession returns middleware guarding admin routes. It resolves the
// session cookie to an active breeder and injects the identity into the gin
// context; anything short of that aborts with a uniform 401.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		b, _ := h.resolve(c)
		if b == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":         "authentication required",
				"authenticated": false,
			})
			return
		}

		c.Set("breeder_id", b.ID)
		c.Set("is_admin", b.Admin)

		c.Next()
	}
}

// RequireAdmin returns middleware for routes only the site owner may touch.
// It must run after RequireSession.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			return
		}
		c.Next()
	}
}
