package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"room-booking-backend/internal/mw"
	"room-booking-backend/internal/store"
)

type createBookingRequest struct {
	RoomCode int64 `json:"room_code" binding:"required"`
}

// CreateBooking books one hour of a room for the logged-in user. The
// username always comes from the session, never from the payload.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	username := mw.SessionUser(c)
	booking, err := h.store.CreateBooking(c.Request.Context(), req.RoomCode, username)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, store.ErrRoomUnavailable):
			bookingsRejected.Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "room is not available for booking"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	bookingsCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"booking_uid":     booking.BookingUid,
		"room_code":       booking.Room.RoomCode,
		"room_name":       booking.Room.RoomName,
		"available_hours": booking.Room.AvailableHours,
	})
}

// CancelBooking deletes a booking and restores the hour to its room.
// Users may only cancel their own bookings.
func (h *Handler) CancelBooking(c *gin.Context) {
	bookingUid := c.Param("booking_uid")
	username := mw.SessionUser(c)

	bookings, err := h.store.BookingsForUser(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}
	owned := false
	for _, b := range bookings {
		if b.BookingUid == bookingUid {
			owned = true
			break
		}
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	result, err := h.store.CancelBooking(c.Request.Context(), bookingUid)
	if err != nil {
		if errors.Is(err, store.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}

	bookingsCancelled.Inc()
	if result.RoomFreed && h.pool != nil {
		h.pool.Dispatch(result.RoomID)
	}

	c.Status(http.StatusNoContent)
}

// MyBookings lists the logged-in user's bookings.
func (h *Handler) MyBookings(c *gin.Context) {
	username := mw.SessionUser(c)

	bookings, err := h.store.BookingsForUser(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// AllBookings lists every booking with its room, for administrative review.
func (h *Handler) AllBookings(c *gin.Context) {
	bookings, err := h.store.AllBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}
