// Package models file: models/attendance.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ----------------------- attendance model -----------------------

// CheckinMethod identifies which proof-of-presence channel produced a record.
type CheckinMethod string

const (
	MethodQR    CheckinMethod = "qr"
	MethodGeo   CheckinMethod = "geo"
	MethodAdmin CheckinMethod = "admin"
)

// AttendanceRecord is the durable fact that a participant was present at
// a session. The composite unique index is what makes concurrent duplicate
// check-ins resolve to exactly one winner; application code never relies on
// a check-then-write alone.
type AttendanceRecord struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TripID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"trip_id"`
	SessionID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_participant" json:"session_id"`
	ParticipantID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_participant" json:"participant_id"`
	Method        CheckinMethod `gorm:"type:varchar(8);not null" json:"method"`
	CheckedAt     time.Time     `gorm:"not null" json:"checked_at"`

	// Geo audit trail, populated only for the geo channel.
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

func (AttendanceRecord) TableName() string { return "attendance_records" }
