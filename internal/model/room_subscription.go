package model

import "time"

// RoomSubscription holds a browser push subscription for room
// availability alerts. Subscribers are notified when a fully booked
// room they watch regains hours.
type RoomSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Rooms []*Room `gorm:"many2many:subscription_room_mapping;"`
}
