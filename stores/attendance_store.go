// Package stores file: stores/attendance_store.go
package stores

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-trip-ops/models"
)

// GormAttendanceStore owns all writes to attendance_records. Uniqueness on
// (session_id, participant_id) is enforced by the database index, so
// concurrent duplicate submissions resolve to exactly one winner.
type GormAttendanceStore struct {
	DB *gorm.DB
}

// NewGormAttendanceStore wraps the shared gorm handle.
func NewGormAttendanceStore(db *gorm.DB) *GormAttendanceStore {
	return &GormAttendanceStore{DB: db}
}

// Insert writes rec with ON CONFLICT DO NOTHING on the composite key. When
// the insert is a no-op the existing (winning) record is fetched and
// returned with created=false.
func (s *GormAttendanceStore) Insert(rec *models.AttendanceRecord) (models.AttendanceRecord, bool, error) {
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "participant_id"}},
		DoNothing: true,
	}).Create(rec)
	if res.Error != nil {
		return models.AttendanceRecord{}, false, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := s.Find(rec.SessionID, rec.ParticipantID)
		if err != nil {
			return models.AttendanceRecord{}, false, err
		}
		if existing == nil {
			// conflict row vanished between insert and read; surface as error
			return models.AttendanceRecord{}, false, gorm.ErrRecordNotFound
		}
		return *existing, false, nil
	}
	return *rec, true, nil
}

// Find returns the record for (sessionID, participantID) or nil.
func (s *GormAttendanceStore) Find(sessionID, participantID uuid.UUID) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.DB.First(&rec, "session_id = ? AND participant_id = ?", sessionID, participantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Exists reports whether a record exists for the pair.
func (s *GormAttendanceStore) Exists(sessionID, participantID uuid.UUID) (bool, error) {
	rec, err := s.Find(sessionID, participantID)
	return rec != nil, err
}

// SessionsAttended counts distinct sessions of the trip the participant
// attended.
func (s *GormAttendanceStore) SessionsAttended(tripID, participantID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.Model(&models.AttendanceRecord{}).
		Where("trip_id = ? AND participant_id = ?", tripID, participantID).
		Distinct("session_id").
		Count(&count).Error
	return count, err
}

// ParticipantIDsForSession returns the set of participants present at the
// session.
func (s *GormAttendanceStore) ParticipantIDsForSession(sessionID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := s.DB.Model(&models.AttendanceRecord{}).
		Where("session_id = ?", sessionID).
		Pluck("participant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// LastCheckin returns the participant's most recent check-in time across
// any session in the trip, or nil when they have none.
func (s *GormAttendanceStore) LastCheckin(tripID, participantID uuid.UUID) (*time.Time, error) {
	var rec models.AttendanceRecord
	err := s.DB.Where("trip_id = ? AND participant_id = ?", tripID, participantID).
		Order("checked_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec.CheckedAt, nil
}

// CountForTrip returns the participant's lifetime check-in count in the trip.
func (s *GormAttendanceStore) CountForTrip(tripID, participantID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.Model(&models.AttendanceRecord{}).
		Where("trip_id = ? AND participant_id = ?", tripID, participantID).
		Count(&count).Error
	return count, err
}
