// Package models file: models/badge.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ----------------------- badge definition model -----------------------

// BadgeConditionType is the small, fixed set of rules a badge can use.
// These are not user-scriptable.
type BadgeConditionType string

const (
	ConditionCheckinSession      BadgeConditionType = "CHECKIN_SESSION"
	ConditionGalleryUploadNum    BadgeConditionType = "GALLERY_UPLOAD_SESSION"
	ConditionCompleteAllSessions BadgeConditionType = "COMPLETE_ALL_SESSIONS"
)

// BadgeDefinition is an admin-defined achievement rule, scoped to one trip.
// SessionID is required for CHECKIN_SESSION and GALLERY_UPLOAD_SESSION;
// TargetValue (>= 1) is required for GALLERY_UPLOAD_SESSION.
type BadgeDefinition struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TripID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"trip_id"`
	Code          string             `gorm:"not null" json:"code"`
	ConditionType BadgeConditionType `gorm:"type:varchar(32);not null" json:"condition_type"`
	SessionID     *uuid.UUID         `gorm:"type:uuid" json:"session_id,omitempty"`
	TargetValue   *int               `json:"target_value,omitempty"`
	IsActive      bool               `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

func (BadgeDefinition) TableName() string { return "badge_definitions" }

// ----------------------- participant badge model -----------------------

// ParticipantBadge is an awarded achievement. Written exactly once per
// (participant, badge) thanks to the composite unique index; never updated.
type ParticipantBadge struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_badge" json:"participant_id"`
	BadgeID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_badge" json:"badge_id"`
	AwardedAt     time.Time `gorm:"not null" json:"awarded_at"`
}

func (ParticipantBadge) TableName() string { return "participant_badges" }

// ----------------------- gallery item model -----------------------

// GalleryItemStatus mirrors the external gallery workflow's states. Only
// the approved count is ever read by the badge engine.
type GalleryItemStatus string

const (
	GalleryStatusPending  GalleryItemStatus = "pending"
	GalleryStatusApproved GalleryItemStatus = "approved"
	GalleryStatusRejected GalleryItemStatus = "rejected"
)

// GalleryItem is owned by the external photo gallery subsystem; this
// service consumes approval facts from it.
type GalleryItem struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"session_id"`
	ParticipantID uuid.UUID         `gorm:"type:uuid;not null;index" json:"participant_id"`
	Status        GalleryItemStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (GalleryItem) TableName() string { return "gallery_items" }
