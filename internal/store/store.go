package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"room-booking-backend/internal/model"
)

// CancelResult describes the outcome of a cancellation. RoomFreed is
// set when the cancellation took the room from fully booked back to
// bookable, which is the signal for availability notifications.
type CancelResult struct {
	RoomID    int64
	RoomCode  int64
	RoomName  string
	RoomFreed bool
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateRoom(ctx context.Context, room *model.Room) error
	UpdateRoom(ctx context.Context, roomCode int64, updated model.Room) (model.Room, error)
	DeleteRoom(ctx context.Context, roomCode int64) error
	ListRooms(ctx context.Context) ([]model.Room, error)
	GetRoom(ctx context.Context, roomCode int64) (model.Room, error)

	CreateBooking(ctx context.Context, roomCode int64, username string) (model.Booking, error)
	CancelBooking(ctx context.Context, bookingUid string) (CancelResult, error)
	BookingsForUser(ctx context.Context, username string) ([]model.Booking, error)
	AllBookings(ctx context.Context) ([]model.Booking, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for read-only handler queries.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// CreateRoom inserts a new room record. The room_code must not collide
// with any existing room.
func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Room{}).Where("room_code = ?", room.RoomCode).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check room code %d: %w", room.RoomCode, err)
		}
		if count > 0 {
			return ErrDuplicateRoomCode
		}
		if err := tx.Create(room).Error; err != nil {
			return fmt.Errorf("failed to create room %d: %w", room.RoomCode, err)
		}
		return nil
	})
}

// UpdateRoom replaces all five room fields of the room identified by
// roomCode. Changing the code to one held by a different room fails
// with ErrDuplicateRoomCode and leaves both rooms untouched.
func (s *gormStore) UpdateRoom(ctx context.Context, roomCode int64, updated model.Room) (model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_code = ?", roomCode).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to look up room %d: %w", roomCode, err)
		}

		var count int64
		if err := tx.Model(&model.Room{}).
			Where("room_code = ? AND id <> ?", updated.RoomCode, room.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check room code %d: %w", updated.RoomCode, err)
		}
		if count > 0 {
			return ErrDuplicateRoomCode
		}

		room.RoomCode = updated.RoomCode
		room.RoomName = updated.RoomName
		room.RoomCapacity = updated.RoomCapacity
		room.AvailableHours = updated.AvailableHours
		room.IsAvailable = updated.IsAvailable
		if err := tx.Model(&model.Room{}).
			Where("id = ?", room.ID).
			Updates(map[string]interface{}{
				"room_code":       room.RoomCode,
				"room_name":       room.RoomName,
				"room_capacity":   room.RoomCapacity,
				"available_hours": room.AvailableHours,
				"is_available":    room.IsAvailable,
			}).Error; err != nil {
			return fmt.Errorf("failed to update room %d: %w", roomCode, err)
		}
		return nil
	})
	if err != nil {
		return model.Room{}, err
	}
	return room, nil
}

// DeleteRoom removes a room and all bookings referencing it. The
// cascade is applied explicitly inside the transaction rather than
// trusting the driver's foreign-key enforcement, which SQLite leaves
// off by default.
func (s *gormStore) DeleteRoom(ctx context.Context, roomCode int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.Where("room_code = ?", roomCode).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to look up room %d: %w", roomCode, err)
		}
		if err := tx.Where("room_id = ?", room.ID).Delete(&model.Booking{}).Error; err != nil {
			return fmt.Errorf("failed to delete bookings for room %d: %w", roomCode, err)
		}
		if err := tx.Delete(&room).Error; err != nil {
			return fmt.Errorf("failed to delete room %d: %w", roomCode, err)
		}
		return nil
	})
}

// ListRooms returns all rooms ordered by room_code.
func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("room_code").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom returns the room with the given room_code.
func (s *gormStore) GetRoom(ctx context.Context, roomCode int64) (model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).Where("room_code = ?", roomCode).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Room{}, ErrRoomNotFound
		}
		return model.Room{}, fmt.Errorf("failed to look up room %d: %w", roomCode, err)
	}
	return room, nil
}

// CreateBooking books one hour of the given room for username. The
// availability check and the counter decrement commit as one unit: the
// decrement carries its own precondition, so two requests racing past
// the Bookable read cannot both take the last hour.
func (s *gormStore) CreateBooking(ctx context.Context, roomCode int64, username string) (model.Booking, error) {
	var booking model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.Where("room_code = ?", roomCode).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to look up room %d: %w", roomCode, err)
		}
		if !room.Bookable() {
			return ErrRoomUnavailable
		}

		res := tx.Model(&model.Room{}).
			Where("id = ? AND is_available = ? AND available_hours > 0", room.ID, true).
			UpdateColumn("available_hours", gorm.Expr("available_hours - 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement hours for room %d: %w", roomCode, res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race for the last hour.
			return ErrRoomUnavailable
		}

		booking = model.Booking{
			BookingUid: uuid.New().String(),
			RoomID:     room.ID,
			Username:   username,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking for room %d: %w", roomCode, err)
		}

		room.AvailableHours--
		booking.Room = room
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

// CancelBooking deletes the booking and restores one hour to its room,
// both inside one transaction.
func (s *gormStore) CancelBooking(ctx context.Context, bookingUid string) (CancelResult, error) {
	var result CancelResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking model.Booking
		if err := tx.Preload("Room").Where("booking_uid = ?", bookingUid).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to look up booking %s: %w", bookingUid, err)
		}
		if err := tx.Delete(&model.Booking{}, booking.ID).Error; err != nil {
			return fmt.Errorf("failed to delete booking %s: %w", bookingUid, err)
		}
		res := tx.Model(&model.Room{}).
			Where("id = ?", booking.RoomID).
			UpdateColumn("available_hours", gorm.Expr("available_hours + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to restore hours for room %d: %w", booking.Room.RoomCode, res.Error)
		}

		result = CancelResult{
			RoomID:   booking.RoomID,
			RoomCode: booking.Room.RoomCode,
			RoomName: booking.Room.RoomName,
			// Freed only when this cancellation took the counter off zero.
			RoomFreed: booking.Room.IsAvailable && booking.Room.AvailableHours == 0,
		}
		return nil
	})
	if err != nil {
		return CancelResult{}, err
	}
	return result, nil
}

// BookingsForUser returns all bookings made under the given username,
// with their rooms preloaded. No ordering is guaranteed.
func (s *gormStore) BookingsForUser(ctx context.Context, username string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.db.WithContext(ctx).Preload("Room").Where("username = ?", username).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", username, err)
	}
	return bookings, nil
}

// AllBookings returns every booking with its room, for admin review.
func (s *gormStore) AllBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.db.WithContext(ctx).Preload("Room").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
