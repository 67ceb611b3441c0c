package models

import "gorm.io/gorm"

// Notification is the stored copy of a dispatched event for its target profile.
// Delivery (live stream, read state) is handled entirely outside the managers.
type Notification struct {
	gorm.Model
	ProfileID uint   `gorm:"not null;index"`
	EventID   string `gorm:"size:36;uniqueIndex"`
	Type      string `gorm:"size:50;not null;index"`
	Payload   string `gorm:"not null"` // JSON body of the originating event
	IsRead    bool   `gorm:"not null;default:false"`

	Profile Profile `gorm:"foreignKey:ProfileID"`
}
