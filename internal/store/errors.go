package store

import "errors"

var (
	// ErrDuplicateRoomCode is returned when a create or edit would reuse
	// another room's room_code.
	ErrDuplicateRoomCode = errors.New("store: room code already exists")

	// ErrRoomNotFound is returned when no room matches the given room_code.
	ErrRoomNotFound = errors.New("store: room not found")

	// ErrBookingNotFound is returned when no booking matches the given uid.
	ErrBookingNotFound = errors.New("store: booking not found")

	// ErrRoomUnavailable is returned when the availability policy rejects
	// a booking: the room is closed or has no hours left.
	ErrRoomUnavailable = errors.New("store: room not available for booking")
)
