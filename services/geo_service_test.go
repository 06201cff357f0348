// file: services/geo_service_test.go
package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go-trip-ops/services"
)

// roughly 50m and 500m north of the origin (1 degree latitude ≈ 111.32km)
const (
	latOffset50m  = 50.0 / 111320.0
	latOffset500m = 500.0 / 111320.0
)

// Test that a device 50m away passes a 150m geofence
func TestInRange_Within(t *testing.T) {
	ok, distance := services.InRange(0, 0, latOffset50m, 0, 150)

	assert.True(t, ok, "50m away should be inside a 150m geofence")
	assert.InDelta(t, 50, distance, 1, "computed distance should be ~50m")
}

// Test that a device 500m away fails a 150m geofence but still reports distance
func TestInRange_Outside(t *testing.T) {
	ok, distance := services.InRange(0, 0, latOffset500m, 0, 150)

	assert.False(t, ok, "500m away should be outside a 150m geofence")
	// ✅ distance is returned for audit regardless of the outcome
	assert.InDelta(t, 500, distance, 2, "computed distance should be ~500m")
}

// Test the identity case: same coordinates means zero distance
func TestInRange_SamePoint(t *testing.T) {
	ok, distance := services.InRange(-33.8688, 151.2093, -33.8688, 151.2093, 150)

	assert.True(t, ok)
	assert.Zero(t, distance)
}

// Test a known real-world distance (Sydney Opera House to Harbour Bridge ≈ 1km)
func TestHaversineDistance_KnownLandmarks(t *testing.T) {
	distance := services.HaversineDistance(-33.8568, 151.2153, -33.8523, 151.2108)

	assert.InDelta(t, 650, distance, 100, "landmark distance should be in the right ballpark")
}

// Test that the boundary itself is accepted (distance == radius)
func TestInRange_ExactBoundary(t *testing.T) {
	_, distance := services.InRange(0, 0, latOffset50m, 0, 150)

	ok, _ := services.InRange(0, 0, latOffset50m, 0, distance)
	assert.True(t, ok, "a device exactly at the radius should be accepted")
}
