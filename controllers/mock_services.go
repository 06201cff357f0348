package controllers

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"go-trip-ops/models"
	"go-trip-ops/services"
)

// MockCheckinService implements the CheckinServiceInterface for testing.
type MockCheckinService struct {
	mock.Mock
}

// RecordCheckin records a presence proof through the mocked pipeline.
func (m *MockCheckinService) RecordCheckin(req services.CheckinRequest) (*services.CheckinResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CheckinResult), args.Error(1)
}

// MockTokenService implements the TokenServiceInterface for testing.
type MockTokenService struct {
	mock.Mock
}

// Issue mints a presence token for a session.
func (m *MockTokenService) Issue(tripID, sessionID uuid.UUID) (string, time.Time, error) {
	args := m.Called(tripID, sessionID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// Verify checks a presence token and returns its scope.
func (m *MockTokenService) Verify(payload string) (uuid.UUID, uuid.UUID, error) {
	args := m.Called(payload)
	return args.Get(0).(uuid.UUID), args.Get(1).(uuid.UUID), args.Error(2)
}

// MockReportService implements the ReportServiceInterface for testing.
type MockReportService struct {
	mock.Mock
}

// ListMissing returns the mocked absentee projection.
func (m *MockReportService) ListMissing(tripID, sessionID uuid.UUID) ([]services.MissingParticipant, error) {
	args := m.Called(tripID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.MissingParticipant), args.Error(1)
}

// MockBadgeService implements the BadgeServiceInterface for testing.
type MockBadgeService struct {
	mock.Mock
}

// Evaluate reports whether a definition is satisfied for a participant.
func (m *MockBadgeService) Evaluate(def models.BadgeDefinition, participantID uuid.UUID) (bool, error) {
	args := m.Called(def, participantID)
	return args.Bool(0), args.Error(1)
}

// Award runs the mocked award pass for an event.
func (m *MockBadgeService) Award(event services.BadgeEvent) ([]models.BadgeDefinition, error) {
	args := m.Called(event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BadgeDefinition), args.Error(1)
}

// AwardFromGalleryApproval runs the mocked gallery award pass.
func (m *MockBadgeService) AwardFromGalleryApproval(participantID, sessionID uuid.UUID) ([]models.BadgeDefinition, error) {
	args := m.Called(participantID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BadgeDefinition), args.Error(1)
}

// ListParticipantBadges returns the mocked award list.
func (m *MockBadgeService) ListParticipantBadges(participantID uuid.UUID) ([]models.ParticipantBadge, error) {
	args := m.Called(participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipantBadge), args.Error(1)
}

// DeleteDefinition removes a definition through the mock.
func (m *MockBadgeService) DeleteDefinition(badgeID uuid.UUID) error {
	args := m.Called(badgeID)
	return args.Error(0)
}
