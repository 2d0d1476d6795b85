package model

import "time"

// User is a registered account. Bookings reference users by username
// only, so deleting a user leaves their bookings in place.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"-"`
	Username     string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	FirstName    string    `gorm:"size:128" json:"first_name"`
	Email        string    `gorm:"size:256" json:"email"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
