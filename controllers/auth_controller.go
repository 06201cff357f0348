// Package controllers provides HTTP handlers for authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-trip-ops/logger"
	"go-trip-ops/models"
)

// ------------------ authentication utilities ------------------

// checkPasswordHash verifies if the provided plain-text password matches the stored hashed password.
func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthController handles admin login and participant portal joins.
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController creates an instance of AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// ------------------ admin login ------------------

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a trip admin against admin_users and marks the
// session as admin.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	var admin models.AdminUser
	err := ac.DB.First(&admin, "username = ?", req.Username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !checkPasswordHash(req.Password, admin.PasswordHash)) {
		logger.Warn.Printf("Login: failed attempt for username %q", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "INVALID_CREDENTIALS"})
		return
	}
	if err != nil {
		logger.Error.Printf("Login: lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	session := sessions.Default(c)
	session.Set("user", admin.Username)
	session.Set("isAdmin", true)
	if err := session.Save(); err != nil {
		logger.Error.Printf("Login: error saving session for %s: %v", admin.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "SESSION_SAVE_FAILED"})
		return
	}

	logger.Info.Printf("Login: admin %s logged in", admin.Username)
	c.JSON(http.StatusOK, gin.H{"username": admin.Username, "isAdmin": true})
}

// ------------------ participant join ------------------

type joinRequest struct {
	TripID        string `json:"trip_id" binding:"required,uuid"`
	ParticipantID string `json:"participant_id" binding:"required,uuid"`
	Contact       string `json:"contact" binding:"required"`
}

// Join establishes a participant portal session. Identity is the enrolled
// participant row plus the contact on file; it is not an admin credential.
func (ac *AuthController) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	var participant models.Participant
	err := ac.DB.First(&participant, "id = ? AND trip_id = ?", req.ParticipantID, req.TripID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && participant.Contact != req.Contact) {
		logger.Warn.Printf("Join: rejected join for participant %s on trip %s", req.ParticipantID, req.TripID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "INVALID_CREDENTIALS"})
		return
	}
	if err != nil {
		logger.Error.Printf("Join: lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
		return
	}

	session := sessions.Default(c)
	session.Set("participantID", participant.ID.String())
	session.Set("tripID", participant.TripID.String())
	if err := session.Save(); err != nil {
		logger.Error.Printf("Join: error saving session for participant %s: %v", participant.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "SESSION_SAVE_FAILED"})
		return
	}

	logger.Info.Printf("Join: participant %s joined portal for trip %s", participant.ID, participant.TripID)
	c.JSON(http.StatusOK, gin.H{"participant_id": participant.ID, "trip_id": participant.TripID, "name": participant.Name})
}

// Logout clears the session.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: error clearing session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
