package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"room-booking-backend/internal/model"
	"room-booking-backend/internal/store"
)

type roomRequest struct {
	RoomCode       int64  `json:"room_code" binding:"required"`
	RoomName       string `json:"room_name" binding:"required"`
	RoomCapacity   int    `json:"room_capacity" binding:"required,gt=0"`
	AvailableHours *int   `json:"available_hours" binding:"required,gte=0"`
	IsAvailable    *bool  `json:"is_available" binding:"required"`
}

func (r roomRequest) toModel() model.Room {
	return model.Room{
		RoomCode:       r.RoomCode,
		RoomName:       r.RoomName,
		RoomCapacity:   r.RoomCapacity,
		AvailableHours: *r.AvailableHours,
		IsAvailable:    *r.IsAvailable,
	}
}

// ListRooms returns all rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom returns a single room by its room_code.
func (h *Handler) GetRoom(c *gin.Context) {
	code, err := strconv.ParseInt(c.Param("room_code"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid room code"})
		return
	}

	room, err := h.store.GetRoom(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve room"})
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateRoom adds a new room record.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	room := req.toModel()
	if err := h.store.CreateRoom(c.Request.Context(), &room); err != nil {
		if errors.Is(err, store.ErrDuplicateRoomCode) {
			c.JSON(http.StatusConflict, gin.H{"error": "room code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// UpdateRoom replaces all fields of the room identified by room_code.
func (h *Handler) UpdateRoom(c *gin.Context) {
	code, err := strconv.ParseInt(c.Param("room_code"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room code"})
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	room, err := h.store.UpdateRoom(c.Request.Context(), code, req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, store.ErrDuplicateRoomCode):
			c.JSON(http.StatusConflict, gin.H{"error": "room code already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		}
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room and all of its bookings.
func (h *Handler) DeleteRoom(c *gin.Context) {
	code, err := strconv.ParseInt(c.Param("room_code"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room code"})
		return
	}

	if err := h.store.DeleteRoom(c.Request.Context(), code); err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete room"})
		return
	}

	c.Status(http.StatusNoContent)
}
