// Package controllers file: controllers/checkin_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-trip-ops/logger"
	"go-trip-ops/models"
	"go-trip-ops/services"
	"go-trip-ops/websocket"
)

// CheckinController exposes the three proof-of-presence channels.
type CheckinController struct {
	Checkins services.CheckinServiceInterface
}

// NewCheckinController creates an instance of CheckinController.
func NewCheckinController(checkins services.CheckinServiceInterface) *CheckinController {
	return &CheckinController{Checkins: checkins}
}

// ------------------ request bodies ------------------

type qrCheckinRequest struct {
	TripID    string `json:"trip_id" binding:"required,uuid"`
	SessionID string `json:"session_id" binding:"required,uuid"`
	Token     string `json:"token" binding:"required"`
}

type geoCheckinRequest struct {
	TripID    string   `json:"trip_id" binding:"required,uuid"`
	SessionID string   `json:"session_id" binding:"required,uuid"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type adminCheckinRequest struct {
	TripID        string `json:"trip_id" binding:"required,uuid"`
	SessionID     string `json:"session_id" binding:"required,uuid"`
	ParticipantID string `json:"participant_id" binding:"required,uuid"`
}

// ------------------ session identity ------------------

// participantFromSession reads the portal participant established by Join.
func participantFromSession(c *gin.Context) (uuid.UUID, bool) {
	session := sessions.Default(c)
	raw, _ := session.Get("participantID").(string)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ------------------ channel handlers ------------------

// QRCheckin records presence proven by a scanned rotating token.
// POST /api/checkins/qr
func (cc *CheckinController) QRCheckin(c *gin.Context) {
	participantID, ok := participantFromSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
		return
	}

	var req qrCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	cc.record(c, services.CheckinRequest{
		Channel:       models.MethodQR,
		TripID:        uuid.MustParse(req.TripID),
		SessionID:     uuid.MustParse(req.SessionID),
		ParticipantID: participantID,
		TokenPayload:  req.Token,
	})
}

// GeoCheckin records presence proven by a device location inside the geofence.
// POST /api/checkins/geo
func (cc *CheckinController) GeoCheckin(c *gin.Context) {
	participantID, ok := participantFromSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHENTICATED"})
		return
	}

	var req geoCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	cc.record(c, services.CheckinRequest{
		Channel:       models.MethodGeo,
		TripID:        uuid.MustParse(req.TripID),
		SessionID:     uuid.MustParse(req.SessionID),
		ParticipantID: participantID,
		DeviceLat:     req.Latitude,
		DeviceLon:     req.Longitude,
	})
}

// AdminCheckin records presence asserted by a trip admin; no geofence or
// token check, and it remains possible on completed trips. Sits behind
// AdminRequired.
// POST /api/checkins/admin
func (cc *CheckinController) AdminCheckin(c *gin.Context) {
	session := sessions.Default(c)
	isAdmin, _ := session.Get("isAdmin").(bool)

	var req adminCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	cc.record(c, services.CheckinRequest{
		Channel:       models.MethodAdmin,
		TripID:        uuid.MustParse(req.TripID),
		SessionID:     uuid.MustParse(req.SessionID),
		ParticipantID: uuid.MustParse(req.ParticipantID),
		IsAdmin:       isAdmin,
	})
}

// record invokes the recorder and renders the uniform response shape.
func (cc *CheckinController) record(c *gin.Context, req services.CheckinRequest) {
	result, err := cc.Checkins.RecordCheckin(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	newBadges := make([]gin.H, 0, len(result.NewBadges))
	for _, b := range result.NewBadges {
		newBadges = append(newBadges, gin.H{"badge_id": b.ID, "code": b.Code})
	}

	status := http.StatusCreated
	if result.AlreadyCheckedIn {
		status = http.StatusOK
	} else {
		// live feed for admin dashboards, best-effort
		go cc.broadcastCheckin(result.Record)
	}

	logger.Debug.Printf("record: participant %s session %s already=%v badges=%d",
		req.ParticipantID, req.SessionID, result.AlreadyCheckedIn, len(newBadges))

	c.JSON(status, gin.H{
		"attendance_id":      result.Record.ID,
		"method":             result.Record.Method,
		"checked_at":         result.Record.CheckedAt.Format(time.RFC3339),
		"already_checked_in": result.AlreadyCheckedIn,
		"new_badges":         newBadges,
	})
}

func (cc *CheckinController) broadcastCheckin(rec models.AttendanceRecord) {
	websocket.BroadcastCheckin(rec.TripID.String(), map[string]interface{}{
		"action":         "checkinRecorded",
		"attendance_id":  rec.ID.String(),
		"session_id":     rec.SessionID.String(),
		"participant_id": rec.ParticipantID.String(),
		"method":         string(rec.Method),
	})
	websocket.PublishCheckinRecorded(rec.TripID.String())
}
