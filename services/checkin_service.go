// Package services file: services/checkin_service.go
package services

import (
	"time"

	"github.com/google/uuid"

	"go-trip-ops/logger"
	"go-trip-ops/models"
)

// ------------------- check-in recorder -------------------

// CheckinRequest is the single entry point's input. Proof is channel
// specific: TokenPayload for qr, DeviceLat/DeviceLon for geo, IsAdmin for
// the admin override.
type CheckinRequest struct {
	Channel       models.CheckinMethod
	TripID        uuid.UUID
	SessionID     uuid.UUID
	ParticipantID uuid.UUID

	TokenPayload string
	DeviceLat    *float64
	DeviceLon    *float64
	IsAdmin      bool
}

// CheckinResult reports the surviving attendance record, whether this
// request was an idempotent replay, and any badges newly earned.
type CheckinResult struct {
	Record           models.AttendanceRecord
	AlreadyCheckedIn bool
	NewBadges        []models.BadgeDefinition
}

// CheckinServiceInterface orchestrates the three proof-of-presence channels.
type CheckinServiceInterface interface {
	RecordCheckin(req CheckinRequest) (*CheckinResult, error)
}

// CheckinService validates a presence proof and writes the canonical
// attendance fact. Badge awarding and notification are best-effort side
// effects that never roll back a successful check-in.
type CheckinService struct {
	Directory  DirectoryStore
	Attendance AttendanceStore
	Tokens     TokenServiceInterface
	Badges     BadgeServiceInterface
	Notifier   Notifier

	GeofenceRadiusMeters float64
}

// NewCheckinService wires the recorder to its collaborators.
func NewCheckinService(dir DirectoryStore, att AttendanceStore, tokens TokenServiceInterface,
	badges BadgeServiceInterface, notifier Notifier, radiusMeters float64) *CheckinService {
	return &CheckinService{
		Directory:            dir,
		Attendance:           att,
		Tokens:               tokens,
		Badges:               badges,
		Notifier:             notifier,
		GeofenceRadiusMeters: radiusMeters,
	}
}

// RecordCheckin runs the validation pipeline in order:
// trip/session resolution → trip-status gate (admin exempt) → enrollment →
// idempotency pre-check → channel proof → conflict-safe insert → best-effort
// badge awarding and notification.
func (s *CheckinService) RecordCheckin(req CheckinRequest) (*CheckinResult, error) {
	// 1) resolve trip and session
	trip, err := s.Directory.GetTrip(req.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrInvalidTrip
	}

	session, err := s.Directory.GetSession(req.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.TripID != req.TripID {
		return nil, ErrInvalidSession
	}

	// 2) completed trips reject self-service check-ins; admin corrections
	//    remain possible on closed trips
	if trip.Status == models.TripStatusCompleted && req.Channel != models.MethodAdmin {
		return nil, ErrTripNotOngoing
	}

	// 3) enrollment
	enrolled, err := s.Directory.IsEnrolled(req.TripID, req.ParticipantID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotRegistered
	}

	// 4) idempotency pre-check: an existing record is a success, not an
	//    error. Badge evaluation still runs (a definition may have been
	//    activated after the original check-in); award writes are dedup-safe.
	if existing, err := s.Attendance.Find(req.SessionID, req.ParticipantID); err != nil {
		return nil, err
	} else if existing != nil {
		logger.Info.Printf("RecordCheckin: participant %s already checked in for session %s",
			req.ParticipantID, req.SessionID)
		newBadges := s.awardBestEffort(req)
		return &CheckinResult{Record: *existing, AlreadyCheckedIn: true, NewBadges: newBadges}, nil
	}

	// 5) channel-specific proof
	record := models.AttendanceRecord{
		TripID:        req.TripID,
		SessionID:     req.SessionID,
		ParticipantID: req.ParticipantID,
		Method:        req.Channel,
		CheckedAt:     time.Now(),
	}

	switch req.Channel {
	case models.MethodQR:
		tokenTrip, tokenSession, err := s.Tokens.Verify(req.TokenPayload)
		if err != nil {
			return nil, err
		}
		if tokenTrip != req.TripID || tokenSession != req.SessionID {
			logger.Warn.Printf("RecordCheckin: token scope mismatch (token %s/%s vs request %s/%s)",
				tokenTrip, tokenSession, req.TripID, req.SessionID)
			return nil, ErrInvalidToken
		}

	case models.MethodGeo:
		if !session.HasCoordinates() {
			return nil, ErrMissingCoordinates
		}
		if req.DeviceLat == nil || req.DeviceLon == nil {
			return nil, ErrOutOfRange
		}
		ok, distance := InRange(*session.Latitude, *session.Longitude,
			*req.DeviceLat, *req.DeviceLon, s.GeofenceRadiusMeters)
		record.Latitude = req.DeviceLat
		record.Longitude = req.DeviceLon
		record.DistanceMeters = &distance
		if !ok {
			logger.Warn.Printf("RecordCheckin: participant %s is %.0fm from session %s (limit %.0fm)",
				req.ParticipantID, distance, req.SessionID, s.GeofenceRadiusMeters)
			return nil, ErrOutOfRange
		}

	case models.MethodAdmin:
		if !req.IsAdmin {
			return nil, ErrForbidden
		}

	default:
		return nil, ErrInvalidToken
	}

	// 6) conflict-safe insert: the unique index on (session, participant)
	//    decides the winner under concurrent duplicate submissions; the
	//    loser observes the winner's record via the idempotency path.
	surviving, created, err := s.Attendance.Insert(&record)
	if err != nil {
		return nil, err
	}
	if !created {
		logger.Info.Printf("RecordCheckin: lost insert race for (%s, %s), returning winner's record",
			req.SessionID, req.ParticipantID)
		newBadges := s.awardBestEffort(req)
		return &CheckinResult{Record: surviving, AlreadyCheckedIn: true, NewBadges: newBadges}, nil
	}

	logger.Info.Printf("RecordCheckin: participant %s checked in to session %s via %s",
		req.ParticipantID, req.SessionID, req.Channel)

	// 7) best-effort side effects; their failure must not fail the check-in
	newBadges := s.awardBestEffort(req)
	if s.Notifier != nil {
		go s.notify(surviving)
	}

	return &CheckinResult{Record: surviving, AlreadyCheckedIn: false, NewBadges: newBadges}, nil
}

// awardBestEffort runs the badge awarder for a check-in event, logging and
// swallowing failures.
func (s *CheckinService) awardBestEffort(req CheckinRequest) []models.BadgeDefinition {
	if s.Badges == nil {
		return nil
	}
	awarded, err := s.Badges.Award(BadgeEvent{
		Type:          EventCheckin,
		TripID:        req.TripID,
		SessionID:     req.SessionID,
		ParticipantID: req.ParticipantID,
	})
	if err != nil {
		logger.Warn.Printf("RecordCheckin: badge awarding failed for participant %s: %v",
			req.ParticipantID, err)
		return nil
	}
	return awarded
}

func (s *CheckinService) notify(rec models.AttendanceRecord) {
	if err := s.Notifier.NotifyCheckin(rec); err != nil {
		logger.Warn.Printf("RecordCheckin: notification dispatch failed for record %s: %v", rec.ID, err)
	}
}
