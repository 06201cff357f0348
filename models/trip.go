// Package models defines data structures used across the application.
// File: models/trip.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ----------------------- trip model -----------------------

// TripStatus enumerates the lifecycle states a trip can be in.
type TripStatus string

const (
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
)

// Trip represents a scheduled trip. Owned by the admin CRUD tooling;
// the check-in engine only ever reads it.
type Trip struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Status    TripStatus `gorm:"type:varchar(16);not null;default:'ongoing'" json:"status"`
	StartDate time.Time  `gorm:"type:date" json:"start_date"`
	EndDate   time.Time  `gorm:"type:date" json:"end_date"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Trip) TableName() string { return "trips" }

// ----------------------- session model -----------------------

// TripSession is one scheduled activity within a trip. Immutable
// reference data as far as check-ins are concerned.
type TripSession struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TripID    uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	DayIndex  int       `gorm:"not null" json:"day_index"`
	DateText  string    `json:"date_text"`
	Title     string    `gorm:"not null" json:"title"`
	Location  string    `json:"location"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (TripSession) TableName() string { return "trip_sessions" }

// HasCoordinates reports whether the session has a configured geofence centre.
func (s *TripSession) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}
