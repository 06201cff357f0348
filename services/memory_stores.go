// Package services file: services/memory_stores.go
//
// In-memory store implementations. They enforce the same uniqueness
// guarantees as the Postgres stores (one winner under concurrent inserts),
// which makes them usable in tests that race real goroutines.
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"go-trip-ops/models"
)

// ------------------- directory -------------------

// MemoryDirectoryStore holds reference data in maps.
type MemoryDirectoryStore struct {
	mu           sync.Mutex
	Trips        map[uuid.UUID]models.Trip
	Sessions     map[uuid.UUID]models.TripSession
	Participants map[uuid.UUID]models.Participant
}

// NewMemoryDirectoryStore creates an empty directory.
func NewMemoryDirectoryStore() *MemoryDirectoryStore {
	return &MemoryDirectoryStore{
		Trips:        make(map[uuid.UUID]models.Trip),
		Sessions:     make(map[uuid.UUID]models.TripSession),
		Participants: make(map[uuid.UUID]models.Participant),
	}
}

func (s *MemoryDirectoryStore) GetTrip(tripID uuid.UUID) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.Trips[tripID]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *MemoryDirectoryStore) GetSession(sessionID uuid.UUID) (*models.TripSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.Sessions[sessionID]; ok {
		return &sess, nil
	}
	return nil, nil
}

func (s *MemoryDirectoryStore) IsEnrolled(tripID, participantID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Participants[participantID]
	return ok && p.TripID == tripID, nil
}

func (s *MemoryDirectoryStore) ListParticipants(tripID uuid.UUID) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Participant
	for _, p := range s.Participants {
		if p.TripID == tripID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryDirectoryStore) CountSessions(tripID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, sess := range s.Sessions {
		if sess.TripID == tripID {
			n++
		}
	}
	return n, nil
}

// ------------------- attendance -------------------

type sessionParticipantKey struct {
	SessionID     uuid.UUID
	ParticipantID uuid.UUID
}

// MemoryAttendanceStore enforces (session, participant) uniqueness under a
// mutex, mirroring the Postgres unique index.
type MemoryAttendanceStore struct {
	mu      sync.Mutex
	records map[sessionParticipantKey]models.AttendanceRecord
}

// NewMemoryAttendanceStore creates an empty attendance store.
func NewMemoryAttendanceStore() *MemoryAttendanceStore {
	return &MemoryAttendanceStore{records: make(map[sessionParticipantKey]models.AttendanceRecord)}
}

func (s *MemoryAttendanceStore) Insert(rec *models.AttendanceRecord) (models.AttendanceRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := sessionParticipantKey{rec.SessionID, rec.ParticipantID}
	if existing, ok := s.records[key]; ok {
		return existing, false, nil
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	s.records[key] = *rec
	return *rec, true, nil
}

func (s *MemoryAttendanceStore) Find(sessionID, participantID uuid.UUID) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[sessionParticipantKey{sessionID, participantID}]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (s *MemoryAttendanceStore) Exists(sessionID, participantID uuid.UUID) (bool, error) {
	rec, err := s.Find(sessionID, participantID)
	return rec != nil, err
}

func (s *MemoryAttendanceStore) SessionsAttended(tripID, participantID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, rec := range s.records {
		if rec.TripID == tripID && rec.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryAttendanceStore) ParticipantIDsForSession(sessionID uuid.UUID) (map[uuid.UUID]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]bool)
	for key := range s.records {
		if key.SessionID == sessionID {
			out[key.ParticipantID] = true
		}
	}
	return out, nil
}

func (s *MemoryAttendanceStore) LastCheckin(tripID, participantID uuid.UUID) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var last *time.Time
	for _, rec := range s.records {
		if rec.TripID != tripID || rec.ParticipantID != participantID {
			continue
		}
		t := rec.CheckedAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last, nil
}

func (s *MemoryAttendanceStore) CountForTrip(tripID, participantID uuid.UUID) (int64, error) {
	return s.SessionsAttended(tripID, participantID)
}

// Len reports the number of stored records (used by race tests).
func (s *MemoryAttendanceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// ------------------- badges -------------------

type participantBadgeKey struct {
	ParticipantID uuid.UUID
	BadgeID       uuid.UUID
}

// MemoryBadgeStore enforces (participant, badge) uniqueness under a mutex.
type MemoryBadgeStore struct {
	mu          sync.Mutex
	Definitions map[uuid.UUID]models.BadgeDefinition
	awards      map[participantBadgeKey]models.ParticipantBadge
}

// NewMemoryBadgeStore creates an empty badge store.
func NewMemoryBadgeStore() *MemoryBadgeStore {
	return &MemoryBadgeStore{
		Definitions: make(map[uuid.UUID]models.BadgeDefinition),
		awards:      make(map[participantBadgeKey]models.ParticipantBadge),
	}
}

func (s *MemoryBadgeStore) ListActiveDefinitions(tripID uuid.UUID) ([]models.BadgeDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BadgeDefinition
	for _, def := range s.Definitions {
		if def.TripID == tripID && def.IsActive {
			out = append(out, def)
		}
	}
	return out, nil
}

func (s *MemoryBadgeStore) InsertAward(participantID, badgeID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := participantBadgeKey{participantID, badgeID}
	if _, ok := s.awards[key]; ok {
		return false, nil
	}
	s.awards[key] = models.ParticipantBadge{
		ID:            uuid.New(),
		ParticipantID: participantID,
		BadgeID:       badgeID,
		AwardedAt:     time.Now(),
	}
	return true, nil
}

func (s *MemoryBadgeStore) ListAwards(participantID uuid.UUID) ([]models.ParticipantBadge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ParticipantBadge
	for key, award := range s.awards {
		if key.ParticipantID == participantID {
			out = append(out, award)
		}
	}
	return out, nil
}

func (s *MemoryBadgeStore) DeleteDefinition(badgeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Definitions, badgeID)
	for key := range s.awards {
		if key.BadgeID == badgeID {
			delete(s.awards, key)
		}
	}
	return nil
}

// AwardCount reports the number of stored awards (used by race tests).
func (s *MemoryBadgeStore) AwardCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.awards)
}

// ------------------- gallery -------------------

// MemoryGalleryStore serves approved-photo counts from a map.
type MemoryGalleryStore struct {
	mu     sync.Mutex
	Counts map[sessionParticipantKey]int64
}

// NewMemoryGalleryStore creates an empty gallery store.
func NewMemoryGalleryStore() *MemoryGalleryStore {
	return &MemoryGalleryStore{Counts: make(map[sessionParticipantKey]int64)}
}

// SetApprovedCount records the approved-photo count for a pair.
func (s *MemoryGalleryStore) SetApprovedCount(sessionID, participantID uuid.UUID, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Counts[sessionParticipantKey{sessionID, participantID}] = n
}

func (s *MemoryGalleryStore) ApprovedCount(sessionID, participantID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Counts[sessionParticipantKey{sessionID, participantID}], nil
}
