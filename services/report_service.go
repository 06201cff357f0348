// Package services file: services/report_service.go
package services

import (
	"time"

	"github.com/google/uuid"

	"go-trip-ops/logger"
)

// ------------------- missing-participants reporter -------------------

// MissingParticipant annotates an absentee with their check-in history
// elsewhere in the trip, so admins chasing stragglers have context.
type MissingParticipant struct {
	ParticipantID uuid.UUID  `json:"participant_id"`
	Name          string     `json:"name"`
	Contact       string     `json:"contact"`
	LastCheckInAt *time.Time `json:"last_check_in_at,omitempty"`
	TotalCheckIns int64      `json:"total_check_ins"`
}

// ReportServiceInterface exposes the read-only admin projections.
type ReportServiceInterface interface {
	ListMissing(tripID, sessionID uuid.UUID) ([]MissingParticipant, error)
}

// ReportService computes roster(trip) minus participants with an
// attendance record for the session. Pure read projection; no side effects.
type ReportService struct {
	Directory  DirectoryStore
	Attendance AttendanceStore
}

// NewReportService wires the reporter to its stores.
func NewReportService(dir DirectoryStore, att AttendanceStore) *ReportService {
	return &ReportService{Directory: dir, Attendance: att}
}

// ListMissing returns every enrolled participant without an attendance
// record for the session, each annotated with their most recent check-in
// across any session of the trip and their lifetime check-in count.
func (s *ReportService) ListMissing(tripID, sessionID uuid.UUID) ([]MissingParticipant, error) {
	session, err := s.Directory.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.TripID != tripID {
		return nil, ErrInvalidSession
	}

	roster, err := s.Directory.ListParticipants(tripID)
	if err != nil {
		return nil, err
	}

	present, err := s.Attendance.ParticipantIDsForSession(sessionID)
	if err != nil {
		return nil, err
	}

	missing := make([]MissingParticipant, 0, len(roster))
	for _, p := range roster {
		if present[p.ID] {
			continue
		}

		last, err := s.Attendance.LastCheckin(tripID, p.ID)
		if err != nil {
			return nil, err
		}
		total, err := s.Attendance.CountForTrip(tripID, p.ID)
		if err != nil {
			return nil, err
		}

		missing = append(missing, MissingParticipant{
			ParticipantID: p.ID,
			Name:          p.Name,
			Contact:       p.Contact,
			LastCheckInAt: last,
			TotalCheckIns: total,
		})
	}

	logger.Debug.Printf("ListMissing: session %s has %d of %d participants missing",
		sessionID, len(missing), len(roster))
	return missing, nil
}
