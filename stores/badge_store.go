// Package stores file: stores/badge_store.go
package stores

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-trip-ops/models"
)

// GormBadgeStore reads badge definitions and owns award writes. Award
// uniqueness on (participant_id, badge_id) lives in the database index;
// a conflict means "already awarded" and is silently ignored.
type GormBadgeStore struct {
	DB *gorm.DB
}

// NewGormBadgeStore wraps the shared gorm handle.
func NewGormBadgeStore(db *gorm.DB) *GormBadgeStore {
	return &GormBadgeStore{DB: db}
}

// ListActiveDefinitions returns the trip's active badge definitions.
func (s *GormBadgeStore) ListActiveDefinitions(tripID uuid.UUID) ([]models.BadgeDefinition, error) {
	var defs []models.BadgeDefinition
	err := s.DB.Where("trip_id = ? AND is_active = ?", tripID, true).Find(&defs).Error
	return defs, err
}

// InsertAward writes the award row with ON CONFLICT DO NOTHING, reporting
// whether this call created it. Exactly one of two racing inserts wins.
func (s *GormBadgeStore) InsertAward(participantID, badgeID uuid.UUID) (bool, error) {
	award := models.ParticipantBadge{
		ParticipantID: participantID,
		BadgeID:       badgeID,
		AwardedAt:     time.Now(),
	}
	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "participant_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&award)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListAwards returns all awards held by a participant.
func (s *GormBadgeStore) ListAwards(participantID uuid.UUID) ([]models.ParticipantBadge, error) {
	var awards []models.ParticipantBadge
	err := s.DB.Where("participant_id = ?", participantID).Order("awarded_at").Find(&awards).Error
	return awards, err
}

// DeleteDefinition removes the definition and cascades deletion of its
// awards in one transaction.
func (s *GormBadgeStore) DeleteDefinition(badgeID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("badge_id = ?", badgeID).Delete(&models.ParticipantBadge{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", badgeID).Delete(&models.BadgeDefinition{}).Error
	})
}
