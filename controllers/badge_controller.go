// Package controllers file: controllers/badge_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-trip-ops/logger"
	"go-trip-ops/services"
	"go-trip-ops/websocket"
)

// BadgeController exposes the awarder's externally-triggered paths.
type BadgeController struct {
	Badges services.BadgeServiceInterface
}

// NewBadgeController creates an instance of BadgeController.
func NewBadgeController(badges services.BadgeServiceInterface) *BadgeController {
	return &BadgeController{Badges: badges}
}

// ------------------ gallery hook ------------------

type galleryApprovalRequest struct {
	ParticipantID string `json:"participant_id" binding:"required,uuid"`
	SessionID     string `json:"session_id" binding:"required,uuid"`
}

// GalleryApproval is invoked by the external gallery subsystem when a photo
// transitions to approved. It re-runs the gallery badge rules for the
// participant; award writes are dedup-safe.
// POST /hooks/gallery-approval
func (bc *BadgeController) GalleryApproval(c *gin.Context) {
	var req galleryApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	awarded, err := bc.Badges.AwardFromGalleryApproval(
		uuid.MustParse(req.ParticipantID), uuid.MustParse(req.SessionID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	newBadges := make([]gin.H, 0, len(awarded))
	for _, b := range awarded {
		newBadges = append(newBadges, gin.H{"badge_id": b.ID, "code": b.Code})
		go websocket.PublishBadgeAwarded(b.TripID.String())
	}

	logger.Info.Printf("GalleryApproval: participant %s session %s → %d new badge(s)",
		req.ParticipantID, req.SessionID, len(newBadges))
	c.JSON(http.StatusOK, gin.H{"new_badges": newBadges})
}

// ------------------ participant awards ------------------

// ListParticipantBadges returns every badge a participant holds.
// GET /api/participants/:participantID/badges
func (bc *BadgeController) ListParticipantBadges(c *gin.Context) {
	participantID, err := uuid.Parse(c.Param("participantID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST"})
		return
	}

	awards, err := bc.Badges.ListParticipantBadges(participantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": awards, "count": len(awards)})
}

// ------------------ definition deletion ------------------

// DeleteDefinition removes a badge definition and all awards earned under
// it. The admin UI warns before calling this; the cascade is irreversible.
// DELETE /admin/badges/:badgeID
func (bc *BadgeController) DeleteDefinition(c *gin.Context) {
	badgeID, err := uuid.Parse(c.Param("badgeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST"})
		return
	}

	if err := bc.Badges.DeleteDefinition(badgeID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": badgeID})
}
