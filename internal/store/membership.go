package store

import (
	"errors"
	"fmt"
	"time"

	"stayloop/backend/internal/models"
	"stayloop/backend/internal/social"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errRejected aborts the join/leave transaction without being an
// infrastructure failure; the outcome variable carries the real answer.
var errRejected = errors.New("conditional write rejected")

// entityTable describes how one capacity-bounded entity kind lays out in SQL.
type entityTable struct {
	name        string // entity table, e.g. "groups"
	ownerCol    string // e.g. "owner_id"
	counterCol  string // e.g. "current_members"
	capacityCol string // e.g. "max_members"
	memberFK    string // fk column on the membership table, e.g. "group_id"
}

// GormMembershipStore implements social.MembershipStore[M] on a *gorm.DB. One
// implementation serves both groups and activities; only the table layout and
// the row factory differ.
type GormMembershipStore[M any] struct {
	db     *gorm.DB
	table  entityTable
	newRow func(entityID, profileID uint, joinedAt time.Time) M
}

func NewGroupStore(db *gorm.DB) *GormMembershipStore[models.GroupMembership] {
	return &GormMembershipStore[models.GroupMembership]{
		db: db,
		table: entityTable{
			name:        "groups",
			ownerCol:    "owner_id",
			counterCol:  "current_members",
			capacityCol: "max_members",
			memberFK:    "group_id",
		},
		newRow: func(entityID, profileID uint, joinedAt time.Time) models.GroupMembership {
			return models.GroupMembership{
				GroupID:   entityID,
				ProfileID: profileID,
				Role:      models.RoleMember,
				JoinedAt:  joinedAt,
			}
		},
	}
}

func NewActivityStore(db *gorm.DB) *GormMembershipStore[models.ActivityParticipation] {
	return &GormMembershipStore[models.ActivityParticipation]{
		db: db,
		table: entityTable{
			name:        "activities",
			ownerCol:    "host_id",
			counterCol:  "current_participants",
			capacityCol: "max_participants",
			memberFK:    "activity_id",
		},
		newRow: func(entityID, profileID uint, joinedAt time.Time) models.ActivityParticipation {
			return models.ActivityParticipation{
				ActivityID: entityID,
				ProfileID:  profileID,
				Status:     models.ParticipationConfirmed,
				JoinedAt:   joinedAt,
			}
		},
	}
}

func (s *GormMembershipStore[M]) Info(entityID uint) (social.EntityInfo, error) {
	var row struct {
		Owner uint
		Cap   int
		Cnt   int
	}
	err := s.db.Table(s.table.name).
		Select(fmt.Sprintf("%s AS owner, %s AS cap, %s AS cnt", s.table.ownerCol, s.table.capacityCol, s.table.counterCol)).
		Where("id = ? AND deleted_at IS NULL", entityID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return social.EntityInfo{}, fmt.Errorf("%w: no such %s", social.ErrNotFound, s.table.name)
	}
	if err != nil {
		return social.EntityInfo{}, &social.StorageError{Op: s.table.name + " lookup", Err: err}
	}
	return social.EntityInfo{OwnerID: row.Owner, Capacity: row.Cap, Current: row.Cnt}, nil
}

// Join inserts the membership row and bumps the counter in one transaction.
// The counter update re-checks the capacity predicate at write time, so two
// concurrent joins racing for the last slot yield one commit and one JoinFull
// regardless of what either caller read earlier.
func (s *GormMembershipStore[M]) Join(entityID, profileID uint) (social.JoinOutcome, error) {
	outcome := social.Joined

	err := s.db.Transaction(func(tx *gorm.DB) error {
		row := s.newRow(entityID, profileID, time.Now().UTC())
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			outcome = social.JoinDuplicate
			return errRejected
		}

		result = tx.Exec(fmt.Sprintf(
			"UPDATE %s SET %s = %s + 1 WHERE id = ? AND %s < %s AND deleted_at IS NULL",
			s.table.name, s.table.counterCol, s.table.counterCol, s.table.counterCol, s.table.capacityCol,
		), entityID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Full (or deleted) at commit time; rolls back the row insert.
			outcome = social.JoinFull
			return errRejected
		}
		return nil
	})
	if err != nil && !errors.Is(err, errRejected) {
		return outcome, &social.StorageError{Op: s.table.name + " join", Err: err}
	}
	return outcome, nil
}

// Leave deletes the membership row and decrements the counter together. A
// profile that is not a member leaves the counter untouched.
func (s *GormMembershipStore[M]) Leave(entityID, profileID uint) (bool, error) {
	left := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var row M
		result := tx.Where(s.table.memberFK+" = ? AND profile_id = ?", entityID, profileID).Delete(&row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		left = true

		return tx.Exec(fmt.Sprintf(
			"UPDATE %s SET %s = %s - 1 WHERE id = ? AND %s > 0",
			s.table.name, s.table.counterCol, s.table.counterCol, s.table.counterCol,
		), entityID).Error
	})
	if err != nil {
		return false, &social.StorageError{Op: s.table.name + " leave", Err: err}
	}
	return left, nil
}

func (s *GormMembershipStore[M]) Members(entityID uint) ([]M, error) {
	var rows []M
	err := s.db.Where(s.table.memberFK+" = ?", entityID).
		Order("joined_at ASC").
		Preload("Profile").
		Find(&rows).Error
	if err != nil {
		return nil, &social.StorageError{Op: s.table.name + " members", Err: err}
	}
	return rows, nil
}

func (s *GormMembershipStore[M]) Count(entityID uint) (int64, error) {
	var count int64
	var row M
	err := s.db.Model(&row).Where(s.table.memberFK+" = ?", entityID).Count(&count).Error
	if err != nil {
		return 0, &social.StorageError{Op: s.table.name + " count", Err: err}
	}
	return count, nil
}
