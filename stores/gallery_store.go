// Package stores file: stores/gallery_store.go
package stores

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-trip-ops/models"
)

// GormGalleryStore reads approval facts from the gallery subsystem's
// table. Only approved counts matter to the badge engine.
type GormGalleryStore struct {
	DB *gorm.DB
}

// NewGormGalleryStore wraps the shared gorm handle.
func NewGormGalleryStore(db *gorm.DB) *GormGalleryStore {
	return &GormGalleryStore{DB: db}
}

// ApprovedCount returns how many of the participant's photos for the
// session have been approved so far.
func (s *GormGalleryStore) ApprovedCount(sessionID, participantID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.Model(&models.GalleryItem{}).
		Where("session_id = ? AND participant_id = ? AND status = ?",
			sessionID, participantID, models.GalleryStatusApproved).
		Count(&count).Error
	return count, err
}
