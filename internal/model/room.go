package model

import "time"

// Room represents a bookable shared room.
type Room struct {
	ID             int64     `gorm:"primaryKey" json:"-"`
	RoomCode       int64     `gorm:"uniqueIndex;not null" json:"room_code"`
	RoomName       string    `gorm:"size:128;not null" json:"room_name"`
	RoomCapacity   int       `gorm:"not null" json:"room_capacity"`
	AvailableHours int       `gorm:"not null" json:"available_hours"`
	IsAvailable    bool      `gorm:"not null" json:"is_available"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`

	// Associations
	Bookings []Booking `gorm:"foreignKey:RoomID" json:"-"`
}

// Bookable reports whether a new booking may be created for the room.
// The store re-checks this predicate at the storage layer when it
// decrements the counter, so a stale read can never drive
// AvailableHours negative.
func (r *Room) Bookable() bool {
	return r.IsAvailable && r.AvailableHours > 0
}
