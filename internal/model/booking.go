package model

import "time"

// Booking links a user to a room for one unit of the room's remaining hours.
type Booking struct {
	ID         int64     `gorm:"primaryKey" json:"-"`
	BookingUid string    `gorm:"type:uuid;uniqueIndex;not null" json:"booking_uid"`
	RoomID     int64     `gorm:"index;not null" json:"-"`
	Username   string    `gorm:"size:80;index;not null" json:"username"`
	CreatedAt  time.Time `json:"created_at"`

	// Associations
	Room Room `gorm:"constraint:OnDelete:CASCADE" json:"room"`
}
