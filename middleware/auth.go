// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go-trip-ops/logger"
)

// -------------- authentication middleware --------------

// AuthRequired ensures the caller has an authenticated session, either a
// participant who joined a trip or a logged-in admin. API callers get a
// JSON 401 rather than a redirect.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	participantID := session.Get("participantID")
	isAdmin, _ := session.Get("isAdmin").(bool)

	if participantID == nil && !isAdmin {
		logger.Warn.Printf("AuthRequired: unauthenticated request to %s blocked", c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
		c.Abort()
		return
	}

	logger.Debug.Println("[AuthRequired] session authenticated - proceeding with request")
	c.Next()
}
