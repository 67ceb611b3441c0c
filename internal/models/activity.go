package models

import (
	"time"

	"gorm.io/gorm"
)

// ParticipationStatus defines the state of a profile's spot in an activity.
// Only confirmed spots count toward capacity.
type ParticipationStatus string

const (
	ParticipationConfirmed ParticipationStatus = "confirmed"
	ParticipationPending   ParticipationStatus = "pending"
	ParticipationCancelled ParticipationStatus = "cancelled"
	ParticipationAttended  ParticipationStatus = "attended"
)

// Activity is a hosted event (a city walk, a dinner, a viewing tour) with a
// hard participant cap. CurrentParticipants follows the same rule as
// Group.CurrentMembers: mutated only together with the participation row.
type Activity struct {
	gorm.Model
	Title       string `gorm:"size:255;not null"`
	Description string
	HostID      uint  `gorm:"not null;index"`
	ListingID   *uint `gorm:"index"` // optional listing the activity takes place at
	StartsAt    time.Time

	MaxParticipants     int `gorm:"not null;default:10"`
	CurrentParticipants int `gorm:"not null;default:0"`

	Host    Profile  `gorm:"foreignKey:HostID"`
	Listing *Listing `gorm:"foreignKey:ListingID"`
}

// ActivityParticipation links one profile to one activity.
type ActivityParticipation struct {
	ID         uint                `gorm:"primaryKey"`
	ActivityID uint                `gorm:"not null;uniqueIndex:idx_activity_profile"`
	ProfileID  uint                `gorm:"not null;uniqueIndex:idx_activity_profile"`
	Status     ParticipationStatus `gorm:"type:varchar(20);not null;default:'confirmed'"`
	JoinedAt   time.Time           `gorm:"not null;index"`

	Profile Profile `gorm:"foreignKey:ProfileID"`
}
