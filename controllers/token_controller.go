// Package controllers file: controllers/token_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"go-trip-ops/logger"
	"go-trip-ops/services"
)

// TokenController mints rotating presence tokens for the admin's
// projected QR display. The displayed code refreshes on the client's
// poll cadence; each request gets a freshly minted token.
type TokenController struct {
	Tokens    services.TokenServiceInterface
	Directory services.DirectoryStore
}

// NewTokenController creates an instance of TokenController.
func NewTokenController(tokens services.TokenServiceInterface, directory services.DirectoryStore) *TokenController {
	return &TokenController{Tokens: tokens, Directory: directory}
}

// resolveScope validates the (trip, session) pair from path params.
func (tc *TokenController) resolveScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tripID, err := uuid.Parse(c.Param("tripID"))
	if err != nil {
		respondServiceError(c, services.ErrInvalidTrip)
		return uuid.Nil, uuid.Nil, false
	}
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		respondServiceError(c, services.ErrInvalidSession)
		return uuid.Nil, uuid.Nil, false
	}

	session, err := tc.Directory.GetSession(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	if session == nil || session.TripID != tripID {
		respondServiceError(c, services.ErrInvalidSession)
		return uuid.Nil, uuid.Nil, false
	}
	return tripID, sessionID, true
}

// IssueToken mints a fresh presence token for the session.
// GET /admin/trips/:tripID/sessions/:sessionID/token
func (tc *TokenController) IssueToken(c *gin.Context) {
	tripID, sessionID, ok := tc.resolveScope(c)
	if !ok {
		return
	}

	payload, expiresAt, err := tc.Tokens.Issue(tripID, sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payload":    payload,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// QRCode renders the current presence token as a PNG for projection.
// GET /admin/trips/:tripID/sessions/:sessionID/qrcode?size=256
func (tc *TokenController) QRCode(c *gin.Context) {
	tripID, sessionID, ok := tc.resolveScope(c)
	if !ok {
		return
	}

	size := 256
	if raw := c.Query("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 64 && n <= 1024 {
			size = n
		}
	}

	payload, _, err := tc.Tokens.Issue(tripID, sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		logger.Error.Printf("QRCode: encoding failed for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
