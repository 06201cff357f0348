// Package middleware file: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go-trip-ops/logger"
)

// AdminRequired is a middleware that checks if the session belongs to a
// trip admin. Non-admins are blocked with a 403; the admin override
// check-in channel and every /admin route sit behind this.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		isAdmin, ok := session.Get("isAdmin").(bool)

		logger.Debug.Printf("AdminRequired Middleware - isAdmin=%v, ok=%v", isAdmin, ok)

		if !ok || !isAdmin {
			logger.Warn.Printf("AdminRequired Middleware - blocked non-admin request to %s", c.Request.URL.Path)
			c.JSON(http.StatusForbidden, gin.H{"error": "FORBIDDEN"})
			c.Abort()
			return
		}

		c.Next()
	}
}
