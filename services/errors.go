// Package services file: services/errors.go
package services

import "errors"

// ------------------- error taxonomy -------------------

// ServiceError is a typed, code-carrying error returned across the module
// boundary. Validation failures are terminal for the triggering request but
// never corrupt state.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

// The full taxonomy of check-in and award failures.
var (
	ErrInvalidTrip        = &ServiceError{Code: "INVALID_TRIP", Message: "trip not found"}
	ErrInvalidSession     = &ServiceError{Code: "INVALID_SESSION", Message: "session not found for trip"}
	ErrTripNotOngoing     = &ServiceError{Code: "TRIP_NOT_ONGOING", Message: "trip is no longer accepting self-service check-ins"}
	ErrNotRegistered      = &ServiceError{Code: "NOT_REGISTERED", Message: "participant is not enrolled in this trip"}
	ErrExpiredToken       = &ServiceError{Code: "EXPIRED_TOKEN", Message: "presence token has expired"}
	ErrInvalidToken       = &ServiceError{Code: "INVALID_TOKEN", Message: "presence token is invalid"}
	ErrOutOfRange         = &ServiceError{Code: "OUT_OF_RANGE", Message: "device location is outside the session geofence"}
	ErrMissingCoordinates = &ServiceError{Code: "MISSING_COORDINATES", Message: "session has no location configured"}
	ErrForbidden          = &ServiceError{Code: "FORBIDDEN", Message: "admin role required"}
)

// AsServiceError unwraps err into a *ServiceError if it carries one.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
