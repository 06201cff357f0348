// Package services file: services/geo_service.go
package services

import "math"

// ------------------- geofence validation -------------------

const earthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance in meters between
// two WGS84 coordinates.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// InRange decides whether a device-reported location falls within the
// session geofence. It is a pure function: no state, no side effects.
// The computed distance is returned regardless of the outcome so the
// caller can store it for audit.
func InRange(sessionLat, sessionLon, deviceLat, deviceLon, radiusMeters float64) (bool, float64) {
	distance := HaversineDistance(sessionLat, sessionLon, deviceLat, deviceLon)
	return distance <= radiusMeters, distance
}
