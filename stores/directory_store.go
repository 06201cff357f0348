// Package stores provides the Postgres-backed store implementations.
// File: stores/directory_store.go
package stores

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-trip-ops/models"
)

// GormDirectoryStore reads trip/session/participant reference data. All
// of it is owned by the external admin CRUD; this store never writes.
type GormDirectoryStore struct {
	DB *gorm.DB
}

// NewGormDirectoryStore wraps the shared gorm handle.
func NewGormDirectoryStore(db *gorm.DB) *GormDirectoryStore {
	return &GormDirectoryStore{DB: db}
}

// GetTrip returns the trip or nil when it does not exist.
func (s *GormDirectoryStore) GetTrip(tripID uuid.UUID) (*models.Trip, error) {
	var trip models.Trip
	err := s.DB.First(&trip, "id = ?", tripID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// GetSession returns the session or nil when it does not exist.
func (s *GormDirectoryStore) GetSession(sessionID uuid.UUID) (*models.TripSession, error) {
	var session models.TripSession
	err := s.DB.First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// IsEnrolled reports whether the participant belongs to the trip's roster.
func (s *GormDirectoryStore) IsEnrolled(tripID, participantID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Participant{}).
		Where("id = ? AND trip_id = ?", participantID, tripID).
		Count(&count).Error
	return count > 0, err
}

// ListParticipants returns the trip roster.
func (s *GormDirectoryStore) ListParticipants(tripID uuid.UUID) ([]models.Participant, error) {
	var out []models.Participant
	err := s.DB.Where("trip_id = ?", tripID).Order("name").Find(&out).Error
	return out, err
}

// CountSessions returns how many sessions the trip currently has.
func (s *GormDirectoryStore) CountSessions(tripID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.Model(&models.TripSession{}).Where("trip_id = ?", tripID).Count(&count).Error
	return count, err
}
