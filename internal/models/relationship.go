package models

import "time"

// RelationshipStatus defines the state of the friendship edge between two profiles.
type RelationshipStatus string

const (
	// RelationshipPending means a friend request has been sent but not yet accepted.
	RelationshipPending RelationshipStatus = "pending"

	// RelationshipAccepted means the request was accepted and the profiles are friends.
	RelationshipAccepted RelationshipStatus = "accepted"

	// RelationshipBlocked is terminal. It is only ever written by moderation
	// tooling; none of the request/accept/reject/cancel flows produce it.
	RelationshipBlocked RelationshipStatus = "blocked"
)

// Relationship is the single friendship edge for an unordered pair of profiles.
// The primary key is (ProfileLowID, ProfileHighID) with the lower id first, so
// at most one row can exist per pair regardless of which side initiated it.
// RequesterID and AddresseeID record direction as attributes of that one row.
type Relationship struct {
	ProfileLowID  uint               `gorm:"primaryKey;autoIncrement:false"`
	ProfileHighID uint               `gorm:"primaryKey;autoIncrement:false"`
	RequesterID   uint               `gorm:"not null;index"`
	AddresseeID   uint               `gorm:"not null;index"`
	Status        RelationshipStatus `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Requester Profile `gorm:"foreignKey:RequesterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Addressee Profile `gorm:"foreignKey:AddresseeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// PairKey returns the canonical (low, high) ordering for a pair of profile ids.
func PairKey(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// NewPendingRelationship builds the canonical row for a fresh friend request.
func NewPendingRelationship(requesterID, addresseeID uint) Relationship {
	low, high := PairKey(requesterID, addresseeID)
	return Relationship{
		ProfileLowID:  low,
		ProfileHighID: high,
		RequesterID:   requesterID,
		AddresseeID:   addresseeID,
		Status:        RelationshipPending,
	}
}
