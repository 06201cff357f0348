// file: services/report_service_test.go
package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trip-ops/models"
	"go-trip-ops/services"
)

// Test the roster-minus-present projection: 10 enrolled, 7 present, 3 missing
func TestListMissing(t *testing.T) {
	dir := services.NewMemoryDirectoryStore()
	att := services.NewMemoryAttendanceStore()
	svc := services.NewReportService(dir, att)

	trip := models.Trip{ID: uuid.New(), Status: models.TripStatusOngoing}
	dir.Trips[trip.ID] = trip
	session := models.TripSession{ID: uuid.New(), TripID: trip.ID, DayIndex: 1}
	dir.Sessions[session.ID] = session

	var roster []models.Participant
	for i := 0; i < 10; i++ {
		p := models.Participant{
			ID:      uuid.New(),
			TripID:  trip.ID,
			Name:    fmt.Sprintf("Participant %d", i),
			Contact: fmt.Sprintf("+6140000%04d", i),
		}
		dir.Participants[p.ID] = p
		roster = append(roster, p)
	}

	for _, p := range roster[:7] {
		_, _, err := att.Insert(&models.AttendanceRecord{
			TripID: trip.ID, SessionID: session.ID, ParticipantID: p.ID,
			Method: models.MethodQR, CheckedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	missing, err := svc.ListMissing(trip.ID, session.ID)
	require.NoError(t, err)
	require.Len(t, missing, 3)

	seen := make(map[uuid.UUID]bool)
	for _, m := range missing {
		seen[m.ParticipantID] = true
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.Contact)
	}
	for _, p := range roster[7:] {
		assert.True(t, seen[p.ID], "participant %s should be reported missing", p.Name)
	}
}

// Test that absentees carry their check-in history from other sessions
func TestListMissing_Annotations(t *testing.T) {
	dir := services.NewMemoryDirectoryStore()
	att := services.NewMemoryAttendanceStore()
	svc := services.NewReportService(dir, att)

	trip := models.Trip{ID: uuid.New(), Status: models.TripStatusOngoing}
	dir.Trips[trip.ID] = trip
	day1 := models.TripSession{ID: uuid.New(), TripID: trip.ID, DayIndex: 1}
	day2 := models.TripSession{ID: uuid.New(), TripID: trip.ID, DayIndex: 2}
	dir.Sessions[day1.ID] = day1
	dir.Sessions[day2.ID] = day2

	p := models.Participant{ID: uuid.New(), TripID: trip.ID, Name: "Morgan"}
	dir.Participants[p.ID] = p

	checkedAt := time.Now().Add(-2 * time.Hour)
	_, _, err := att.Insert(&models.AttendanceRecord{
		TripID: trip.ID, SessionID: day1.ID, ParticipantID: p.ID,
		Method: models.MethodGeo, CheckedAt: checkedAt,
	})
	require.NoError(t, err)

	// Morgan attended day 1 but is missing from day 2
	missing, err := svc.ListMissing(trip.ID, day2.ID)
	require.NoError(t, err)
	require.Len(t, missing, 1)

	require.NotNil(t, missing[0].LastCheckInAt)
	assert.WithinDuration(t, checkedAt, *missing[0].LastCheckInAt, time.Second)
	assert.Equal(t, int64(1), missing[0].TotalCheckIns)
}

// Test that a never-seen absentee has no last check-in timestamp
func TestListMissing_NeverCheckedIn(t *testing.T) {
	dir := services.NewMemoryDirectoryStore()
	att := services.NewMemoryAttendanceStore()
	svc := services.NewReportService(dir, att)

	trip := models.Trip{ID: uuid.New(), Status: models.TripStatusOngoing}
	dir.Trips[trip.ID] = trip
	session := models.TripSession{ID: uuid.New(), TripID: trip.ID, DayIndex: 1}
	dir.Sessions[session.ID] = session
	p := models.Participant{ID: uuid.New(), TripID: trip.ID, Name: "Casey"}
	dir.Participants[p.ID] = p

	missing, err := svc.ListMissing(trip.ID, session.ID)
	require.NoError(t, err)
	require.Len(t, missing, 1)

	assert.Nil(t, missing[0].LastCheckInAt)
	assert.Zero(t, missing[0].TotalCheckIns)
}

// Test that a session from another trip is rejected
func TestListMissing_WrongSession(t *testing.T) {
	dir := services.NewMemoryDirectoryStore()
	att := services.NewMemoryAttendanceStore()
	svc := services.NewReportService(dir, att)

	trip := models.Trip{ID: uuid.New(), Status: models.TripStatusOngoing}
	otherTrip := models.Trip{ID: uuid.New(), Status: models.TripStatusOngoing}
	dir.Trips[trip.ID] = trip
	dir.Trips[otherTrip.ID] = otherTrip

	foreign := models.TripSession{ID: uuid.New(), TripID: otherTrip.ID, DayIndex: 1}
	dir.Sessions[foreign.ID] = foreign

	_, err := svc.ListMissing(trip.ID, foreign.ID)
	se, ok := services.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_SESSION", se.Code)
}
