// Package services file: services/stores.go
//
// Store interfaces consumed by the check-in and badge engines. The gorm
// implementations live in the stores package; tests use the in-memory
// fakes from memory_stores.go.
package services

import (
	"time"

	"github.com/google/uuid"

	"go-trip-ops/models"
)

// DirectoryStore reads trip/session/participant reference data. The
// engine never writes through it.
type DirectoryStore interface {
	GetTrip(tripID uuid.UUID) (*models.Trip, error)
	GetSession(sessionID uuid.UUID) (*models.TripSession, error)
	IsEnrolled(tripID, participantID uuid.UUID) (bool, error)
	ListParticipants(tripID uuid.UUID) ([]models.Participant, error)
	CountSessions(tripID uuid.UUID) (int64, error)
}

// AttendanceStore owns all writes to attendance_records. Insert must be
// conflict-safe on (sessionID, participantID): the storage layer, not the
// caller, decides the single winner under concurrency.
type AttendanceStore interface {
	// Insert writes rec unless a record for (rec.SessionID, rec.ParticipantID)
	// already exists. It returns the surviving record and whether this call
	// created it.
	Insert(rec *models.AttendanceRecord) (models.AttendanceRecord, bool, error)
	Find(sessionID, participantID uuid.UUID) (*models.AttendanceRecord, error)
	Exists(sessionID, participantID uuid.UUID) (bool, error)
	// SessionsAttended counts distinct sessions of the trip the participant
	// has a record for.
	SessionsAttended(tripID, participantID uuid.UUID) (int64, error)
	// ParticipantIDsForSession returns the set of participants with a record
	// for the session.
	ParticipantIDsForSession(sessionID uuid.UUID) (map[uuid.UUID]bool, error)
	LastCheckin(tripID, participantID uuid.UUID) (*time.Time, error)
	CountForTrip(tripID, participantID uuid.UUID) (int64, error)
}

// BadgeStore owns badge definitions (read) and awards (write).
type BadgeStore interface {
	ListActiveDefinitions(tripID uuid.UUID) ([]models.BadgeDefinition, error)
	// InsertAward writes the (participantID, badgeID) row unless it already
	// exists; a conflict means "already awarded" and is not an error.
	InsertAward(participantID, badgeID uuid.UUID) (bool, error)
	ListAwards(participantID uuid.UUID) ([]models.ParticipantBadge, error)
	// DeleteDefinition removes a definition and cascades deletion of all its
	// awards in a single transaction.
	DeleteDefinition(badgeID uuid.UUID) error
}

// GalleryStore reads approval facts produced by the external gallery
// subsystem.
type GalleryStore interface {
	ApprovedCount(sessionID, participantID uuid.UUID) (int64, error)
}
