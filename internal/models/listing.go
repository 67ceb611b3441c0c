package models

import "gorm.io/gorm"

// Listing represents a room or property offered on the platform.
type Listing struct {
	gorm.Model
	Title       string `gorm:"size:255;not null"`
	Description string
	City        string `gorm:"size:120;index"`
	HostID      uint   `gorm:"not null;index"`

	Amenities []*Amenity `gorm:"many2many:listing_amenities;"`
	Host      Profile    `gorm:"foreignKey:HostID"`
}

// Amenity is a listing attribute (e.g., "wifi", "parking", "kitchen").
type Amenity struct {
	gorm.Model
	Name string `gorm:"size:100;unique;not null"`
}
