package store

import (
	"errors"

	"stayloop/backend/internal/models"
	"stayloop/backend/internal/social"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRelationshipStore persists friendship edges in SQL. The composite
// primary key (profile_low_id, profile_high_id) is the conflict target for
// every insert, so the uniqueness check is keyed on the unordered pair and a
// concurrent A->B / B->A double-send admits exactly one row.
type GormRelationshipStore struct {
	db *gorm.DB
}

func NewRelationshipStore(db *gorm.DB) *GormRelationshipStore {
	return &GormRelationshipStore{db: db}
}

func (s *GormRelationshipStore) FindByPair(a, b uint) (*models.Relationship, error) {
	low, high := models.PairKey(a, b)

	var rel models.Relationship
	err := s.db.Where("profile_low_id = ? AND profile_high_id = ?", low, high).First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &social.StorageError{Op: "relationship lookup", Err: err}
	}
	return &rel, nil
}

func (s *GormRelationshipStore) CreateIfAbsent(rel *models.Relationship) (bool, error) {
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(rel)
	if result.Error != nil {
		return false, &social.StorageError{Op: "relationship insert", Err: result.Error}
	}
	return result.RowsAffected == 1, nil
}

func (s *GormRelationshipStore) AcceptPending(requesterID, addresseeID uint) (bool, error) {
	low, high := models.PairKey(requesterID, addresseeID)

	result := s.db.Model(&models.Relationship{}).
		Where("profile_low_id = ? AND profile_high_id = ? AND requester_id = ? AND addressee_id = ? AND status = ?",
			low, high, requesterID, addresseeID, models.RelationshipPending).
		Update("status", models.RelationshipAccepted)
	if result.Error != nil {
		return false, &social.StorageError{Op: "relationship accept", Err: result.Error}
	}
	return result.RowsAffected == 1, nil
}

func (s *GormRelationshipStore) DeletePending(requesterID, addresseeID uint) (bool, error) {
	low, high := models.PairKey(requesterID, addresseeID)

	result := s.db.
		Where("profile_low_id = ? AND profile_high_id = ? AND requester_id = ? AND addressee_id = ? AND status = ?",
			low, high, requesterID, addresseeID, models.RelationshipPending).
		Delete(&models.Relationship{})
	if result.Error != nil {
		return false, &social.StorageError{Op: "relationship delete", Err: result.Error}
	}
	return result.RowsAffected == 1, nil
}
