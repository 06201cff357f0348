// Package services file: services/notifier.go
package services

import (
	"go-trip-ops/logger"
	"go-trip-ops/models"
)

// ------------------- notification hook -------------------

// Notifier is the fire-and-forget hook toward the external notification
// dispatcher (WhatsApp). Failures are logged, never surfaced to the
// check-in caller.
type Notifier interface {
	NotifyCheckin(rec models.AttendanceRecord) error
}

// LogNotifier is the default dispatcher: it only records the event. The
// real WhatsApp channel is an external collaborator behind the same
// interface.
type LogNotifier struct{}

// NotifyCheckin logs the check-in that would be pushed out.
func (LogNotifier) NotifyCheckin(rec models.AttendanceRecord) error {
	logger.Info.Printf("NotifyCheckin: participant %s present at session %s (method=%s)",
		rec.ParticipantID, rec.SessionID, rec.Method)
	return nil
}
