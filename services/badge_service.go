// Package services file: services/badge_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-trip-ops/logger"
	"go-trip-ops/models"
)

// ------------------- badge events -------------------

// BadgeEventType identifies what kind of fact triggered an award pass.
type BadgeEventType string

const (
	EventCheckin         BadgeEventType = "CHECKIN"
	EventGalleryApproved BadgeEventType = "GALLERY_APPROVED"
)

// BadgeEvent carries the context of a qualifying fact into the awarder.
type BadgeEvent struct {
	Type          BadgeEventType
	TripID        uuid.UUID
	SessionID     uuid.UUID
	ParticipantID uuid.UUID
}

// BadgeServiceInterface evaluates badge rules and performs idempotent,
// race-safe award writes.
type BadgeServiceInterface interface {
	Evaluate(def models.BadgeDefinition, participantID uuid.UUID) (bool, error)
	Award(event BadgeEvent) ([]models.BadgeDefinition, error)
	AwardFromGalleryApproval(participantID, sessionID uuid.UUID) ([]models.BadgeDefinition, error)
	ListParticipantBadges(participantID uuid.UUID) ([]models.ParticipantBadge, error)
	DeleteDefinition(badgeID uuid.UUID) error
}

// BadgeService is the rule evaluator + awarder.
type BadgeService struct {
	Directory  DirectoryStore
	Attendance AttendanceStore
	Badges     BadgeStore
	Gallery    GalleryStore
}

// NewBadgeService wires the awarder to its stores.
func NewBadgeService(dir DirectoryStore, att AttendanceStore, badges BadgeStore, gallery GalleryStore) *BadgeService {
	return &BadgeService{Directory: dir, Attendance: att, Badges: badges, Gallery: gallery}
}

// ------------------- rule evaluation -------------------

// Evaluate maps (badge definition, participant facts) to a satisfied bool.
// Stateless: it reads the stores but never writes.
func (s *BadgeService) Evaluate(def models.BadgeDefinition, participantID uuid.UUID) (bool, error) {
	switch def.ConditionType {
	case models.ConditionCheckinSession:
		if def.SessionID == nil {
			return false, fmt.Errorf("badge %s: CHECKIN_SESSION definition has no session", def.ID)
		}
		return s.Attendance.Exists(*def.SessionID, participantID)

	case models.ConditionGalleryUploadNum:
		if def.SessionID == nil || def.TargetValue == nil {
			return false, fmt.Errorf("badge %s: GALLERY_UPLOAD_SESSION definition is incomplete", def.ID)
		}
		count, err := s.Gallery.ApprovedCount(*def.SessionID, participantID)
		if err != nil {
			return false, err
		}
		return count >= int64(*def.TargetValue), nil

	case models.ConditionCompleteAllSessions:
		// The session set is read at evaluation time; sessions added later
		// are not retroactively applied to already-awarded badges.
		total, err := s.Directory.CountSessions(def.TripID)
		if err != nil {
			return false, err
		}
		if total == 0 {
			return false, nil
		}
		attended, err := s.Attendance.SessionsAttended(def.TripID, participantID)
		if err != nil {
			return false, err
		}
		return attended >= total, nil

	default:
		return false, fmt.Errorf("badge %s: unknown condition type %q", def.ID, def.ConditionType)
	}
}

// relevant filters definitions by event kind: CHECKIN events re-check
// CHECKIN_SESSION and COMPLETE_ALL_SESSIONS; GALLERY_APPROVED events only
// re-check GALLERY_UPLOAD_SESSION, since session completion depends on
// attendance alone.
func relevant(def models.BadgeDefinition, eventType BadgeEventType) bool {
	switch eventType {
	case EventCheckin:
		return def.ConditionType == models.ConditionCheckinSession ||
			def.ConditionType == models.ConditionCompleteAllSessions
	case EventGalleryApproved:
		return def.ConditionType == models.ConditionGalleryUploadNum
	default:
		return false
	}
}

// ------------------- awarding -------------------

// Award runs the evaluator over the trip's active definitions and performs
// dedup-safe award inserts. It returns only the badges *newly* awarded by
// this call; badges already held are silently skipped. Concurrent triggers
// for the same badge are safe: exactly one insert wins at the storage layer.
func (s *BadgeService) Award(event BadgeEvent) ([]models.BadgeDefinition, error) {
	defs, err := s.Badges.ListActiveDefinitions(event.TripID)
	if err != nil {
		return nil, err
	}

	var awarded []models.BadgeDefinition
	for _, def := range defs {
		if !relevant(def, event.Type) {
			continue
		}

		satisfied, err := s.Evaluate(def, event.ParticipantID)
		if err != nil {
			logger.Warn.Printf("Award: evaluation of badge %s (%s) failed: %v", def.Code, def.ID, err)
			continue
		}
		if !satisfied {
			continue
		}

		created, err := s.Badges.InsertAward(event.ParticipantID, def.ID)
		if err != nil {
			logger.Error.Printf("Award: insert for badge %s / participant %s failed: %v",
				def.ID, event.ParticipantID, err)
			continue
		}
		if created {
			logger.Info.Printf("Award: participant %s earned badge %s (%s)",
				event.ParticipantID, def.Code, def.ConditionType)
			awarded = append(awarded, def)
		}
	}
	return awarded, nil
}

// AwardFromGalleryApproval is invoked by the external gallery collaborator
// when a photo transitions to approved. The trip is resolved from the session.
func (s *BadgeService) AwardFromGalleryApproval(participantID, sessionID uuid.UUID) ([]models.BadgeDefinition, error) {
	session, err := s.Directory.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidSession
	}
	return s.Award(BadgeEvent{
		Type:          EventGalleryApproved,
		TripID:        session.TripID,
		SessionID:     sessionID,
		ParticipantID: participantID,
	})
}

// ListParticipantBadges returns all awards held by a participant.
func (s *BadgeService) ListParticipantBadges(participantID uuid.UUID) ([]models.ParticipantBadge, error) {
	return s.Badges.ListAwards(participantID)
}

// DeleteDefinition removes a badge definition and cascades deletion of its
// awards. Explicit, irreversible product behavior: the admin UI warns for it.
func (s *BadgeService) DeleteDefinition(badgeID uuid.UUID) error {
	if err := s.Badges.DeleteDefinition(badgeID); err != nil {
		return err
	}
	logger.Info.Printf("DeleteDefinition: badge %s and all its awards removed at %s",
		badgeID, time.Now().Format(time.RFC3339))
	return nil
}
