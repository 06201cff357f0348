// file: services/checkin_service_test.go
package services_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trip-ops/models"
	"go-trip-ops/services"
)

// ------------------- fixture -------------------

type checkinFixture struct {
	dir      *services.MemoryDirectoryStore
	att      *services.MemoryAttendanceStore
	badges   *services.MemoryBadgeStore
	gallery  *services.MemoryGalleryStore
	tokens   *services.TokenService
	badgeSvc *services.BadgeService
	svc      *services.CheckinService

	trip        models.Trip
	sessions    []models.TripSession
	participant models.Participant
}

func float64Ptr(v float64) *float64 { return &v }

// newCheckinFixture builds an in-memory world: one ongoing trip with three
// located sessions and one enrolled participant.
func newCheckinFixture(t *testing.T) *checkinFixture {
	t.Helper()

	f := &checkinFixture{
		dir:     services.NewMemoryDirectoryStore(),
		att:     services.NewMemoryAttendanceStore(),
		badges:  services.NewMemoryBadgeStore(),
		gallery: services.NewMemoryGalleryStore(),
		tokens:  services.NewTokenService("test-secret", time.Minute, 5*time.Second),
	}

	f.trip = models.Trip{ID: uuid.New(), Name: "Year 10 Snow Trip", Status: models.TripStatusOngoing}
	f.dir.Trips[f.trip.ID] = f.trip

	for day := 1; day <= 3; day++ {
		session := models.TripSession{
			ID:        uuid.New(),
			TripID:    f.trip.ID,
			DayIndex:  day,
			Title:     "Session",
			Latitude:  float64Ptr(0),
			Longitude: float64Ptr(0),
		}
		f.dir.Sessions[session.ID] = session
		f.sessions = append(f.sessions, session)
	}

	f.participant = models.Participant{ID: uuid.New(), TripID: f.trip.ID, Name: "Alex", Contact: "+61400000001"}
	f.dir.Participants[f.participant.ID] = f.participant

	f.badgeSvc = services.NewBadgeService(f.dir, f.att, f.badges, f.gallery)
	f.svc = services.NewCheckinService(f.dir, f.att, f.tokens, f.badgeSvc, services.LogNotifier{}, 150)
	return f
}

func (f *checkinFixture) qrRequest(t *testing.T, session models.TripSession) services.CheckinRequest {
	t.Helper()
	payload, _, err := f.tokens.Issue(f.trip.ID, session.ID)
	require.NoError(t, err)
	return services.CheckinRequest{
		Channel:       models.MethodQR,
		TripID:        f.trip.ID,
		SessionID:     session.ID,
		ParticipantID: f.participant.ID,
		TokenPayload:  payload,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	se, ok := services.AsServiceError(err)
	require.True(t, ok, "expected a typed service error, got %v", err)
	assert.Equal(t, code, se.Code)
}

// ------------------- channel validation -------------------

// Test a successful QR check-in writes exactly one record
func TestRecordCheckin_QR_Success(t *testing.T) {
	f := newCheckinFixture(t)

	result, err := f.svc.RecordCheckin(f.qrRequest(t, f.sessions[0]))
	require.NoError(t, err)

	assert.False(t, result.AlreadyCheckedIn)
	assert.Equal(t, models.MethodQR, result.Record.Method)
	assert.Equal(t, 1, f.att.Len())
}

// Test that a token scoped to another session is rejected
func TestRecordCheckin_QR_ScopeMismatch(t *testing.T) {
	f := newCheckinFixture(t)

	req := f.qrRequest(t, f.sessions[0])
	req.SessionID = f.sessions[1].ID // token was minted for sessions[0]

	_, err := f.svc.RecordCheckin(req)
	assertCode(t, err, "INVALID_TOKEN")
	assert.Zero(t, f.att.Len(), "no record may be written on a failed proof")
}

// Test that an expired token is rejected with EXPIRED_TOKEN
func TestRecordCheckin_QR_Expired(t *testing.T) {
	f := newCheckinFixture(t)
	shortLived := services.NewTokenService("test-secret", 30*time.Millisecond, 0)
	f.svc.Tokens = shortLived

	payload, _, err := shortLived.Issue(f.trip.ID, f.sessions[0].ID)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	_, err = f.svc.RecordCheckin(services.CheckinRequest{
		Channel:       models.MethodQR,
		TripID:        f.trip.ID,
		SessionID:     f.sessions[0].ID,
		ParticipantID: f.participant.ID,
		TokenPayload:  payload,
	})
	assertCode(t, err, "EXPIRED_TOKEN")
}

// Test geo check-in inside the fence (≈50m with a 150m radius)
func TestRecordCheckin_Geo_Within(t *testing.T) {
	f := newCheckinFixture(t)

	result, err := f.svc.RecordCheckin(services.CheckinRequest{
		Channel:       models.MethodGeo,
		TripID:        f.trip.ID,
		SessionID:     f.sessions[0].ID,
		ParticipantID: f.participant.ID,
		DeviceLat:     float64Ptr(latOffset50m),
		DeviceLon:     float64Ptr(0),
	})
	require.NoError(t, err)

	require.NotNil(t, result.Record.DistanceMeters)
	assert.InDelta(t, 50, *result.Record.DistanceMeters, 1, "distance is stored for audit")
}

// Test geo check-in outside the fence writes nothing
func TestRecordCheckin_Geo_OutOfRange(t *testing.T) {
	f := newCheckinFixture(t)

	_, err := f.svc.RecordCheckin(services.CheckinRequest{
		Channel:       models.MethodGeo,
		TripID:        f.trip.ID,
		SessionID:     f.sessions[0].ID,
		ParticipantID: f.participant.ID,
		DeviceLat:     float64Ptr(latOffset500m),
		DeviceLon:     float64Ptr(0),
	})
	assertCode(t, err, "OUT_OF_RANGE")
	assert.Zero(t, f.att.Len())
}

// Test geo check-in against a session with no configured location
func TestRecordCheckin_Geo_MissingCoordinates(t *testing.T) {
	f := newCheckinFixture(t)

	bare := models.TripSession{ID: uuid.New(), TripID: f.trip.ID, DayIndex: 4, Title: "Free time"}
	f.dir.Sessions[bare.ID] = bare

	_, err := f.svc.RecordCheckin(services.CheckinRequest{
		Channel:       models.MethodGeo,
		TripID:        f.trip.ID,
		SessionID:     bare.ID,
		ParticipantID: f.participant.ID,
		DeviceLat:     float64Ptr(0),
		DeviceLon:     float64Ptr(0),
	})
	assertCode(t, err, "MISSING_COORDINATES")
}

// Test the admin channel requires the admin role
func TestRecordCheckin_Admin_Forbidden(t *testing.T) {
	f := newCheckinFixture(t)

	_, err := f.svc.RecordCheckin(services.CheckinRequest{
		Channel:       models.MethodAdmin,
		TripID:        f.trip.ID,
		SessionID:     f.sessions[0].ID,
		ParticipantID: f.participant.ID,
		IsAdmin:       false,
	})
	assertCode(t, err, "FORBIDDEN")
}

// ------------------- pipeline gates -------------------

// Test unknown trip and unknown/mismatched session resolution
func TestRecordCheckin_InvalidTripAndSession(t *testing.T) {
	f := newCheckinFixture(t)

	req := f.qrRequest(t, f.sessions[0])
	req.TripID = uuid.New()
	_, err := f.svc.RecordCheckin(req)
	assertCode(t, err, "INVALID_TRIP")

	otherTrip := models.Trip{ID: uuid.New(), Status: models.TripStatusOngoing}
	f.dir.Trips[otherTrip.ID] = otherTrip
	req = f.qrRequest(t, f.sessions[0])
	req.TripID = otherTrip.ID // session belongs to f.trip, not otherTrip
	_, err = f.svc.RecordCheckin(req)
	assertCode(t, err, "INVALID_SESSION")
}

// Test a completed trip blocks self-service channels but not admin overrides
func TestRecordCheckin_CompletedTrip(t *testing.T) {
	f := newCheckinFixture(t)
	trip := f.trip
	trip.Status = models.TripStatusCompleted
	f.dir.Trips[trip.ID] = trip

	_, err := f.svc.RecordCheckin(f.qrRequest(t, f.sessions[0]))
	assertCode(t, err, "TRIP_NOT_ONGOING")

	// ✅ admin corrections remain possible on closed trips
	result, err := f.svc.RecordCheckin(services.CheckinRequest{
		Channel:       models.MethodAdmin,
		TripID:        f.trip.ID,
		SessionID:     f.sessions[0].ID,
		ParticipantID: f.participant.ID,
		IsAdmin:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MethodAdmin, result.Record.Method)
}

// Test that a participant from another trip is rejected
func TestRecordCheckin_NotRegistered(t *testing.T) {
	f := newCheckinFixture(t)

	stranger := models.Participant{ID: uuid.New(), TripID: uuid.New(), Name: "Sam"}
	f.dir.Participants[stranger.ID] = stranger

	req := f.qrRequest(t, f.sessions[0])
	req.ParticipantID = stranger.ID
	_, err := f.svc.RecordCheckin(req)
	assertCode(t, err, "NOT_REGISTERED")
}

// ------------------- idempotency -------------------

// Test that a repeat check-in is a success, not an error, and writes nothing
func TestRecordCheckin_Idempotent(t *testing.T) {
	f := newCheckinFixture(t)

	first, err := f.svc.RecordCheckin(f.qrRequest(t, f.sessions[0]))
	require.NoError(t, err)
	assert.False(t, first.AlreadyCheckedIn)

	second, err := f.svc.RecordCheckin(f.qrRequest(t, f.sessions[0]))
	require.NoError(t, err)

	assert.True(t, second.AlreadyCheckedIn, "replay must be flagged, not rejected")
	assert.Equal(t, first.Record.ID, second.Record.ID, "replay observes the original record")
	assert.Equal(t, 1, f.att.Len())
}

// Test N concurrent identical submissions resolve to exactly one record
func TestRecordCheckin_ConcurrentDuplicates(t *testing.T) {
	f := newCheckinFixture(t)
	const n = 8

	var wg sync.WaitGroup
	errs := make([]error, n)
	results := make([]*services.CheckinResult, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.svc.RecordCheckin(f.qrRequest(t, f.sessions[0]))
		}(i)
	}
	wg.Wait()

	fresh := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i], "every concurrent duplicate must succeed")
		if !results[i].AlreadyCheckedIn {
			fresh++
		}
	}

	// ✅ exactly one winner, everyone else observed the winner's record
	assert.Equal(t, 1, fresh, "exactly one request may create the record")
	assert.Equal(t, 1, f.att.Len())
}

// ------------------- best-effort side effects -------------------

type failingBadgeService struct{}

func (failingBadgeService) Evaluate(models.BadgeDefinition, uuid.UUID) (bool, error) {
	return false, errors.New("evaluator down")
}
func (failingBadgeService) Award(services.BadgeEvent) ([]models.BadgeDefinition, error) {
	return nil, errors.New("awarder down")
}
func (failingBadgeService) AwardFromGalleryApproval(uuid.UUID, uuid.UUID) ([]models.BadgeDefinition, error) {
	return nil, errors.New("awarder down")
}
func (failingBadgeService) ListParticipantBadges(uuid.UUID) ([]models.ParticipantBadge, error) {
	return nil, errors.New("awarder down")
}
func (failingBadgeService) DeleteDefinition(uuid.UUID) error { return errors.New("awarder down") }

// Test that a broken badge engine never fails or rolls back a check-in
func TestRecordCheckin_BadgeFailureIsBestEffort(t *testing.T) {
	f := newCheckinFixture(t)
	f.svc.Badges = failingBadgeService{}

	result, err := f.svc.RecordCheckin(f.qrRequest(t, f.sessions[0]))
	require.NoError(t, err, "badge failure must not fail the check-in")
	assert.Empty(t, result.NewBadges)
	assert.Equal(t, 1, f.att.Len(), "the attendance write must survive")
}

// ------------------- end-to-end badge scenario -------------------

// Scenario: QR into S1 and S2, admin override into S3 → COMPLETE_ALL_SESSIONS
// is awarded exactly once, in the final response only
func TestRecordCheckin_CompleteAllSessionsScenario(t *testing.T) {
	f := newCheckinFixture(t)

	badge := models.BadgeDefinition{
		ID:            uuid.New(),
		TripID:        f.trip.ID,
		Code:          "FULL_ATTENDANCE",
		ConditionType: models.ConditionCompleteAllSessions,
		IsActive:      true,
	}
	f.badges.Definitions[badge.ID] = badge

	r1, err := f.svc.RecordCheckin(f.qrRequest(t, f.sessions[0]))
	require.NoError(t, err)
	assert.Empty(t, r1.NewBadges)

	r2, err := f.svc.RecordCheckin(f.qrRequest(t, f.sessions[1]))
	require.NoError(t, err)
	assert.Empty(t, r2.NewBadges)

	r3, err := f.svc.RecordCheckin(services.CheckinRequest{
		Channel:       models.MethodAdmin,
		TripID:        f.trip.ID,
		SessionID:     f.sessions[2].ID,
		ParticipantID: f.participant.ID,
		IsAdmin:       true,
	})
	require.NoError(t, err)

	require.Len(t, r3.NewBadges, 1, "the completion badge arrives with the final check-in")
	assert.Equal(t, "FULL_ATTENDANCE", r3.NewBadges[0].Code)
	assert.Equal(t, 1, f.badges.AwardCount())

	// a replayed final check-in must not re-award
	r4, err := f.svc.RecordCheckin(f.qrRequest(t, f.sessions[2]))
	require.NoError(t, err)
	assert.True(t, r4.AlreadyCheckedIn)
	assert.Empty(t, r4.NewBadges)
	assert.Equal(t, 1, f.badges.AwardCount())
}
