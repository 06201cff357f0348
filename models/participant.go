// Package models file: models/participant.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ----------------------- participant model -----------------------

// Participant is someone enrolled in a trip. Read-only reference data
// for the check-in engine; the roster is maintained by admin CRUD.
type Participant struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TripID    uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	Name      string    `gorm:"not null" json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Participant) TableName() string { return "participants" }

// ----------------------- admin user model -----------------------

// AdminUser backs the session login for trip staff. Passwords are
// stored as bcrypt hashes only.
type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AdminUser) TableName() string { return "admin_users" }
