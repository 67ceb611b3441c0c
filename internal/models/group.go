package models

import (
	"time"

	"gorm.io/gorm"
)

// MemberRole defines what a profile may do inside a group.
type MemberRole string

const (
	RoleMember    MemberRole = "member"
	RoleModerator MemberRole = "moderator"
	RoleAdmin     MemberRole = "admin"
)

// Group is a community group with a hard member cap. CurrentMembers is a
// derived counter: it is only ever written in the same atomic step as a
// membership row mutation, never on its own.
type Group struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Description string
	OwnerID     uint  `gorm:"not null;index"`
	ListingID   *uint `gorm:"index"` // optional listing the group gathers around

	MaxMembers     int `gorm:"not null;default:50"`
	CurrentMembers int `gorm:"not null;default:0"`

	Owner   Profile  `gorm:"foreignKey:OwnerID"`
	Listing *Listing `gorm:"foreignKey:ListingID"`
}

// GroupMembership links one profile to one group. The unique index on
// (GroupID, ProfileID) makes the conditional insert the arbiter between
// concurrent joins by the same profile.
type GroupMembership struct {
	ID        uint       `gorm:"primaryKey"`
	GroupID   uint       `gorm:"not null;uniqueIndex:idx_group_profile"`
	ProfileID uint       `gorm:"not null;uniqueIndex:idx_group_profile"`
	Role      MemberRole `gorm:"type:varchar(20);not null;default:'member'"`
	JoinedAt  time.Time  `gorm:"not null;index"`

	Profile Profile `gorm:"foreignKey:ProfileID"`
}
