package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-booking-backend/internal/model"
)

func roomPayload(code int64, name string, capacity, hours int, available bool) gin.H {
	return gin.H{
		"room_code":       code,
		"room_name":       name,
		"room_capacity":   capacity,
		"available_hours": hours,
		"is_available":    available,
	}
}

func TestCreateRoom(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin")

	w := env.do(t, http.MethodPost, "/api/rooms", token, roomPayload(3, "cn332", 8, 4, true))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	room, err := env.store.GetRoom(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "cn332", room.RoomName)
	assert.Equal(t, 4, room.AvailableHours)
}

func TestCreateRoomDuplicateCode(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin")
	env.seedRoom(t, 1, "cn330", 10, 2, true)

	w := env.do(t, http.MethodPost, "/api/rooms", token, roomPayload(1, "imposter", 4, 9, true))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "room code already exists")
}

func TestCreateRoomValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin")

	// Negative hours must be rejected before reaching the store.
	w := env.do(t, http.MethodPost, "/api/rooms", token, gin.H{
		"room_code":       5,
		"room_name":       "bad",
		"room_capacity":   10,
		"available_hours": -1,
		"is_available":    true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/rooms", token, gin.H{"room_name": "incomplete"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRoom(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin")
	env.seedRoom(t, 1, "cn330", 10, 2, true)

	w := env.do(t, http.MethodPut, "/api/rooms/1", token, roomPayload(4, "cn333", 12, 3, false))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	room, err := env.store.GetRoom(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "cn333", room.RoomName)
	assert.Equal(t, 12, room.RoomCapacity)
	assert.False(t, room.IsAvailable)
}

func TestUpdateRoomDuplicateCode(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin")
	env.seedRoom(t, 1, "cn330", 10, 2, true)
	env.seedRoom(t, 2, "cn331", 5, 0, false)

	w := env.do(t, http.MethodPut, "/api/rooms/1", token, roomPayload(2, "duplicate", 5, 2, true))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "room code already exists")
}

func TestUpdateRoomNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin")

	w := env.do(t, http.MethodPut, "/api/rooms/42", token, roomPayload(42, "ghost", 5, 2, true))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRoomCascades(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin")
	env.seedRoom(t, 1, "cn330", 10, 5, true)

	w := env.do(t, http.MethodPost, "/api/bookings", token, gin.H{"room_code": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodDelete, "/api/rooms/1", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&model.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "bookings must be removed with their room")
}

func TestDeleteRoomNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "admin")

	w := env.do(t, http.MethodDelete, "/api/rooms/99", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRoomsIsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoom(t, 1, "cn330", 10, 2, true)
	env.seedRoom(t, 2, "cn331", 5, 0, false)

	w := env.do(t, http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rooms []model.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 2)
	assert.Equal(t, "cn330", rooms[0].RoomName)
	assert.Equal(t, "cn331", rooms[1].RoomName)
}

func TestGetRoom(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoom(t, 1, "cn330", 10, 2, true)

	w := env.do(t, http.MethodGet, "/api/rooms/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cn330")

	w = env.do(t, http.MethodGet, "/api/rooms/404", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/rooms/not-a-code", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Anonymous listings are served from cache inside the TTL, so a write
// immediately after a read does not show up until the entry expires.
func TestListRoomsIsCachedForAnonymousClients(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoom(t, 1, "cn330", 10, 2, true)

	first := env.do(t, http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, first.Code)

	env.seedRoom(t, 2, "cn331", 5, 0, false)

	second := env.do(t, http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}
