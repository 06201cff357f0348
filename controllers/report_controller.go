// Package controllers file: controllers/report_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-trip-ops/services"
)

// ReportController serves the admin's read-only projections.
type ReportController struct {
	Reports services.ReportServiceInterface
}

// NewReportController creates an instance of ReportController.
func NewReportController(reports services.ReportServiceInterface) *ReportController {
	return &ReportController{Reports: reports}
}

// ListMissing returns the participants without an attendance record for a
// session, annotated with their check-in history elsewhere in the trip.
// GET /admin/trips/:tripID/sessions/:sessionID/missing
func (rc *ReportController) ListMissing(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		respondServiceError(c, services.ErrInvalidTrip)
		return
	}
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		respondServiceError(c, services.ErrInvalidSession)
		return
	}

	missing, err := rc.Reports.ListMissing(tripID, sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"missing": missing, "count": len(missing)})
}
