// Package controllers file: controllers/helpers.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-trip-ops/logger"
	"go-trip-ops/services"
)

// ------------------ error mapping ------------------

// statusForCode maps the service error taxonomy to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case "INVALID_TRIP", "INVALID_SESSION":
		return http.StatusNotFound
	case "TRIP_NOT_ONGOING":
		return http.StatusConflict
	case "NOT_REGISTERED", "OUT_OF_RANGE", "FORBIDDEN":
		return http.StatusForbidden
	case "EXPIRED_TOKEN", "INVALID_TOKEN":
		return http.StatusUnauthorized
	case "MISSING_COORDINATES":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError renders a typed service failure, falling back to a
// plain 500 for unexpected errors.
func respondServiceError(c *gin.Context, err error) {
	if se, ok := services.AsServiceError(err); ok {
		c.JSON(statusForCode(se.Code), gin.H{"error": se.Code, "message": se.Message})
		return
	}
	logger.Error.Printf("respondServiceError: unexpected error on %s: %v", c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
}

// ------------------ health ------------------

// Health is the load balancer's liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
